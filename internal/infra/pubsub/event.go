// Package pubsub publishes reminder run requests for the worker.
package pubsub

import (
	"encoding/json"

	"nudge/internal/domain/service"

	"github.com/pkg/errors"
)

// encodeRunEvent returns the message body and the attributes the worker reads
// its request ID from.
func encodeRunEvent(event *service.ReminderRunEvent) ([]byte, map[string]string, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, nil, errors.Wrap(err, "encode reminder run event")
	}

	attrs := map[string]string{"run_id": event.RunID}
	if event.Source != "" {
		attrs["source"] = event.Source
	}
	if event.RequestID != "" {
		attrs["request_id"] = event.RequestID
	}

	return data, attrs, nil
}
