package domain

type Service string

const (
	ServiceCommon Service = "common"
	ServiceObject Service = "object"
)

const (
	MethodAuthenticate = "authenticate"
	MethodExecuteKW    = "execute_kw"
)

// RemoteCallRequest is one execute_kw invocation against a model.
type RemoteCallRequest struct {
	Model   string
	Method  string
	Args    []any
	Options map[string]any
}
