package annex

import "os/exec"

type Engine string

const (
	EngineAuto        Engine = "auto"
	EngineWkhtmltopdf Engine = "wkhtmltopdf"
	EngineBuiltin     Engine = "builtin"
	EngineNone        Engine = "none"
)

const defaultWkhtmltopdfBinary = "wkhtmltopdf"

// Capability is resolved once at startup and never changes afterwards.
type Capability struct {
	Engine Engine
	PDF    bool
	Binary string
}

// DetectCapability resolves the configured engine. A missing wkhtmltopdf
// binary degrades to the HTML fallback.
func DetectCapability(engine, wkhtmltopdfPath string) Capability {
	return detect(Engine(engine), wkhtmltopdfPath, exec.LookPath)
}

func detect(engine Engine, binary string, lookPath func(string) (string, error)) Capability {
	switch engine {
	case EngineBuiltin:
		return Capability{Engine: EngineBuiltin, PDF: true}
	case EngineWkhtmltopdf, EngineAuto, "":
		if binary == "" {
			binary = defaultWkhtmltopdfBinary
		}
		if resolved, err := lookPath(binary); err == nil {
			return Capability{Engine: EngineWkhtmltopdf, PDF: true, Binary: resolved}
		}
		return Capability{Engine: EngineNone}
	default:
		return Capability{Engine: EngineNone}
	}
}
