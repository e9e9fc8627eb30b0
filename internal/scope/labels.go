package scope

const (
	programLabel   = "program"
	filePrefix     = "file: "
	functionPrefix = "function: "
	classPrefix    = "class: "
)

func ProgramLabel() string { return programLabel }

func FileLabel(path string) string { return filePrefix + path }

func FunctionLabel(name string) string { return functionPrefix + name }

func ClassLabel(name string) string { return classPrefix + name }
