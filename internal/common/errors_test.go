package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchemaError_NamesMissingAndFound(t *testing.T) {
	err := NewSchemaError([]string{"资源链接", "资源名称"}, []string{"资源类型", "备注"})

	assert.Contains(t, err.Error(), "资源链接, 资源名称")
	assert.Contains(t, err.Error(), "资源类型, 备注")
}

func TestFormatError_Unwrap(t *testing.T) {
	cause := errors.New("zip: not a valid zip file")
	err := fmt.Errorf("loading: %w", NewFormatError("x.xlsx", cause))

	assert.ErrorIs(t, err, cause)
	var formatErr *FormatError
	assert.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "x.xlsx", formatErr.Path)
}

func TestDeliveryError_Message(t *testing.T) {
	err := NewDeliveryError(93000, "invalid webhook")

	assert.Equal(t, "webhook rejected message: invalid webhook (code 93000)", err.Error())
}

func TestIsFatal(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"config", NewConfigError("webhook.url", "is required"), true},
		{"not found", NewNotFoundError("a.xlsx"), true},
		{"format", NewFormatError("a.xlsx", errors.New("bad")), true},
		{"schema wrapped", fmt.Errorf("load: %w", NewSchemaError([]string{"a"}, nil)), true},
		{"transport", NewTransportError("post", errors.New("timeout")), false},
		{"delivery", NewDeliveryError(1, "x"), false},
		{"plain", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsFatal(tt.err))
		})
	}
}
