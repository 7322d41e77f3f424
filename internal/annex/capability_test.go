package annex

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	found := func(name string) (string, error) { return "/usr/local/bin/" + name, nil }
	missing := func(string) (string, error) { return "", errors.New("not found") }

	tests := []struct {
		name   string
		engine Engine
		binary string
		look   func(string) (string, error)
		want   Capability
	}{
		{"none never renders pdf", EngineNone, "", found, Capability{Engine: EngineNone}},
		{"builtin needs nothing", EngineBuiltin, "", missing, Capability{Engine: EngineBuiltin, PDF: true}},
		{"auto with binary", EngineAuto, "", found, Capability{Engine: EngineWkhtmltopdf, PDF: true, Binary: "/usr/local/bin/wkhtmltopdf"}},
		{"auto without binary", EngineAuto, "", missing, Capability{Engine: EngineNone}},
		{"explicit path", EngineWkhtmltopdf, "wk", found, Capability{Engine: EngineWkhtmltopdf, PDF: true, Binary: "/usr/local/bin/wk"}},
		{"explicit engine missing binary", EngineWkhtmltopdf, "", missing, Capability{Engine: EngineNone}},
		{"unknown engine", Engine("weasy"), "", found, Capability{Engine: EngineNone}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detect(tt.engine, tt.binary, tt.look))
		})
	}
}
