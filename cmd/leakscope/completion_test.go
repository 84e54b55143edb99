package leakscope

import (
	"bytes"
	"testing"
)

func TestWriteCompletion(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		var buf bytes.Buffer
		if err := writeCompletion(&buf, shell); err != nil {
			t.Fatalf("%s: %v", shell, err)
		}
		if buf.Len() == 0 {
			t.Fatalf("%s: empty completion script", shell)
		}
	}
}
