package stacktrace

import "testing"

func TestInternalPaths(t *testing.T) {
	stack := []byte(`goroutine 7 [running]:
runtime/debug.Stack()
	/usr/local/go/src/runtime/debug/stack.go:26 +0x5e
github.com/shandysiswandi/otpgate/internal/challenge/usecase.(*Usecase).Create(...)
	/src/otpgate/internal/challenge/usecase/create.go:42 +0x1a
github.com/aws/aws-lambda-go/lambda.(*handlerOptions).Invoke(...)
	/go/pkg/mod/github.com/aws/aws-lambda-go@v1.51.0/lambda/handler.go:10 +0x2
`)

	got := InternalPaths(stack)

	if len(got) != 1 || got[0] != "internal/challenge/usecase/create.go:42" {
		t.Fatalf("InternalPaths() = %#v", got)
	}
}
