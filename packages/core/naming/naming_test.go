package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
		expected   string
	}{
		{"underscores become spaces", "Step_one", "Step one"},
		{"multiple underscores", "Account_is_debited", "Account is debited"},
		{"consecutive underscores collapse", "Step__two", "Step two"},
		{"camel case splits", "TransferFunds", "Transfer Funds"},
		{"lower camel case splits", "transferFunds", "transfer Funds"},
		{"mixed separators", "Account_isDebited", "Account is Debited"},
		{"acronym run", "HTTPServerStarts", "HTTP Server Starts"},
		{"digits stay attached", "Retry3Times", "Retry3 Times"},
		{"single word unchanged", "Given", "Given"},
		{"casing preserved", "step_ONE", "step ONE"},
		{"trailing underscore dropped", "Step_one_", "Step one"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.identifier))
		})
	}
}

func TestFormat_EmptyInputUnchanged(t *testing.T) {
	assert.Equal(t, "", Format(""))
	assert.Equal(t, "   ", Format("   "))
	assert.Equal(t, "\t", Format("\t"))
}

func Given_an_empty_account() error { return nil }

type fixture struct{}

func (fixture) When_funds_arrive() error { return nil }

func TestFuncName(t *testing.T) {
	t.Run("plain function", func(t *testing.T) {
		assert.Equal(t, "Given_an_empty_account", FuncName(Given_an_empty_account))
	})

	t.Run("method value strips receiver and fm suffix", func(t *testing.T) {
		assert.Equal(t, "When_funds_arrive", FuncName(fixture{}.When_funds_arrive))
	})

	t.Run("anonymous function yields empty", func(t *testing.T) {
		assert.Equal(t, "", FuncName(func() error { return nil }))
	})

	t.Run("non-function yields empty", func(t *testing.T) {
		assert.Equal(t, "", FuncName(42))
		assert.Equal(t, "", FuncName(nil))
	})
}

func TestFuncName_FormatsIntoPhrase(t *testing.T) {
	assert.Equal(t, "Given an empty account", Format(FuncName(Given_an_empty_account)))
}
