package browser

import (
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestCommand(t *testing.T) {
	tests := []struct {
		goos string
		want []string
	}{
		{"darwin", []string{"open", "https://go.dev"}},
		{"linux", []string{"xdg-open", "https://go.dev"}},
		{"windows", []string{"rundll32", "url.dll,FileProtocolHandler", "https://go.dev"}},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			cmd, err := command(tt.goos, "https://go.dev")
			assert.NilError(t, err)
			assert.Check(t, is.DeepEqual(cmd.Args, tt.want))
		})
	}
}

func TestCommandUnsupported(t *testing.T) {
	_, err := command("plan9", "https://go.dev")
	assert.ErrorContains(t, err, "not supported on plan9")
}

func TestOpenNothing(t *testing.T) {
	assert.NilError(t, Open(nil))
}
