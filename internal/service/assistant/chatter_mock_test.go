package assistant

import (
	"context"
	"sync"

	"github.com/heartmarshall/nivara-backend/internal/provider"
)

var _ chatter = &chatterMock{}

type chatterMock struct {
	ChatFunc     func(ctx context.Context, system string, history []provider.Turn, message string) (string, error)
	GenerateFunc func(ctx context.Context, prompt string) (string, error)

	calls struct {
		Chat []struct {
			Ctx     context.Context
			System  string
			History []provider.Turn
			Message string
		}
		Generate []struct {
			Ctx    context.Context
			Prompt string
		}
	}
	lockChat     sync.RWMutex
	lockGenerate sync.RWMutex
}

func (mock *chatterMock) Chat(ctx context.Context, system string, history []provider.Turn, message string) (string, error) {
	if mock.ChatFunc == nil {
		panic("chatterMock.ChatFunc: method is nil but chatter.Chat was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		System  string
		History []provider.Turn
		Message string
	}{Ctx: ctx, System: system, History: history, Message: message}
	mock.lockChat.Lock()
	mock.calls.Chat = append(mock.calls.Chat, callInfo)
	mock.lockChat.Unlock()
	return mock.ChatFunc(ctx, system, history, message)
}

func (mock *chatterMock) ChatCalls() []struct {
	Ctx     context.Context
	System  string
	History []provider.Turn
	Message string
} {
	mock.lockChat.RLock()
	calls := mock.calls.Chat
	mock.lockChat.RUnlock()
	return calls
}

func (mock *chatterMock) Generate(ctx context.Context, prompt string) (string, error) {
	if mock.GenerateFunc == nil {
		panic("chatterMock.GenerateFunc: method is nil but chatter.Generate was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Prompt string
	}{Ctx: ctx, Prompt: prompt}
	mock.lockGenerate.Lock()
	mock.calls.Generate = append(mock.calls.Generate, callInfo)
	mock.lockGenerate.Unlock()
	return mock.GenerateFunc(ctx, prompt)
}

func (mock *chatterMock) GenerateCalls() []struct {
	Ctx    context.Context
	Prompt string
} {
	mock.lockGenerate.RLock()
	calls := mock.calls.Generate
	mock.lockGenerate.RUnlock()
	return calls
}
