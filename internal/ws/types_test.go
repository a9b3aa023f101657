package ws

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/google/go-cmp/cmp"
)

func TestNewErrorMessageIsValidJSON(t *testing.T) {
	msg := NewErrorMessage(errors.New(`bad "quoted" input`))
	if msg.Type != MessageTypeError {
		t.Errorf("Type = %q; want %q", msg.Type, MessageTypeError)
	}
	var payload ErrorPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if payload.Error != `bad "quoted" input` {
		t.Errorf("Error = %q", payload.Error)
	}
	if _, err := json.Marshal(msg); err != nil {
		t.Errorf("json.Marshal(message) error: %v", err)
	}
}

func TestMoveRequestDecoding(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want MoveRequest
	}{
		{
			name: "squares",
			in:   `{"type":"move","payload":{"from":{"row":6,"col":4},"to":{"row":4,"col":4}}}`,
			want: MoveRequest{From: &model.Position{Row: 6, Col: 4}, To: &model.Position{Row: 4, Col: 4}},
		},
		{
			name: "text",
			in:   `{"type":"move","payload":{"move":"e2e4"}}`,
			want: MoveRequest{Move: "e2e4"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var msg Message
			if err := json.Unmarshal([]byte(tt.in), &msg); err != nil {
				t.Fatalf("Unmarshal(message) error: %v", err)
			}
			if msg.Type != MessageTypeMove {
				t.Fatalf("Type = %q; want move", msg.Type)
			}
			var got MoveRequest
			if err := json.Unmarshal(msg.Payload, &got); err != nil {
				t.Fatalf("Unmarshal(payload) error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("MoveRequest mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
