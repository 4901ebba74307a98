package scan

import (
	"context"
	"sync"

	"github.com/heartmarshall/nivara-backend/internal/provider"
)

var _ diagnoser = &diagnoserMock{}

type diagnoserMock struct {
	DiagnoseFunc func(ctx context.Context, img provider.Image, prompt string) (string, error)

	calls struct {
		Diagnose []struct {
			Ctx    context.Context
			Img    provider.Image
			Prompt string
		}
	}
	lockDiagnose sync.RWMutex
}

func (mock *diagnoserMock) Diagnose(ctx context.Context, img provider.Image, prompt string) (string, error) {
	if mock.DiagnoseFunc == nil {
		panic("diagnoserMock.DiagnoseFunc: method is nil but diagnoser.Diagnose was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Img    provider.Image
		Prompt string
	}{Ctx: ctx, Img: img, Prompt: prompt}
	mock.lockDiagnose.Lock()
	mock.calls.Diagnose = append(mock.calls.Diagnose, callInfo)
	mock.lockDiagnose.Unlock()
	return mock.DiagnoseFunc(ctx, img, prompt)
}

func (mock *diagnoserMock) DiagnoseCalls() []struct {
	Ctx    context.Context
	Img    provider.Image
	Prompt string
} {
	mock.lockDiagnose.RLock()
	calls := mock.calls.Diagnose
	mock.lockDiagnose.RUnlock()
	return calls
}
