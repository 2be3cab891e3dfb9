package session

import (
	"context"
	"sync"

	"legal-intake-be/pkg/media"
)

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

// fakeBackend records every outbound call and fails on demand.
type fakeBackend struct {
	mu sync.Mutex

	createErr       error
	credsErr        error
	finalizeErr     error
	processErr      error
	conversationErr error
	persistErr      error
	validationErr   error
	deleteErr       error

	validation  *ValidationResult
	snapshot    *CaseSnapshot
	generateFn  func() (*CaseSnapshot, error)
	strength    *StrengthReport
	strengthErr error

	// When set, PersistCaseFields signals persistEntered and then blocks
	// until persistHold is closed.
	persistEntered chan struct{}
	persistHold    chan struct{}

	createCalls     int
	validationCalls int
	generateCalls   int
	deleteCalls     int
	persistPayloads []map[string]string
	processedMsgs   []TranscriptMessage
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		validation: &ValidationResult{GenerationAllowed: true},
		snapshot:   &CaseSnapshot{CaseId: "case-1", Fields: map[string]string{}},
	}
}

func (f *fakeBackend) CreateCase(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.createErr != nil {
		return "", f.createErr
	}
	return "case-1", nil
}

func (f *fakeBackend) AcquireMediaCredentials(ctx context.Context, caseId string) (*media.Credentials, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.credsErr != nil {
		return nil, f.credsErr
	}
	return &media.Credentials{
		ServerURL: "wss://media.example.com",
		RoomName:  "intake-" + caseId,
		Token:     "signed-token",
	}, nil
}

func (f *fakeBackend) FinalizeSession(ctx context.Context, caseId string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.finalizeErr
}

func (f *fakeBackend) ProcessTranscript(ctx context.Context, caseId string, messages []TranscriptMessage) (*CaseSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.processedMsgs = messages
	if f.processErr != nil {
		return nil, f.processErr
	}
	return f.snapshot, nil
}

func (f *fakeBackend) FetchConversation(ctx context.Context, caseId string) ([]ConversationMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.conversationErr != nil {
		return nil, f.conversationErr
	}
	return []ConversationMessage{{Role: "assistant", Text: "Hola"}}, nil
}

func (f *fakeBackend) FetchValidation(ctx context.Context, caseId string) (*ValidationResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.validationCalls++
	if f.validationErr != nil {
		return nil, f.validationErr
	}
	return f.validation, nil
}

func (f *fakeBackend) PersistCaseFields(ctx context.Context, caseId string, fields map[string]string) (*CaseSnapshot, error) {
	f.mu.Lock()
	entered := f.persistEntered
	hold := f.persistHold
	f.mu.Unlock()
	if entered != nil {
		entered <- struct{}{}
	}
	if hold != nil {
		<-hold
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.persistErr != nil {
		return nil, f.persistErr
	}
	copied := make(map[string]string, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	f.persistPayloads = append(f.persistPayloads, copied)
	return nil, nil
}

func (f *fakeBackend) AnalyzeStrength(ctx context.Context, caseId string) (*StrengthReport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.strengthErr != nil {
		return nil, f.strengthErr
	}
	if f.strength != nil {
		return f.strength, nil
	}
	return &StrengthReport{Score: 0.7}, nil
}

func (f *fakeBackend) GenerateDocument(ctx context.Context, caseId string) (*CaseSnapshot, error) {
	f.mu.Lock()
	fn := f.generateFn
	f.generateCalls++
	f.mu.Unlock()
	if fn != nil {
		return fn()
	}
	score := 0.82
	return &CaseSnapshot{
		CaseId:               caseId,
		Fields:               map[string]string{},
		HasGeneratedDocument: true,
		GeneratedDocument:    "ACCIÓN DE TUTELA ...",
		QualityScore:         &score,
		Suggestions:          []string{"Precisar la fecha de los hechos."},
	}, nil
}

func (f *fakeBackend) DownloadDocument(ctx context.Context, caseId string, format string) ([]byte, string, error) {
	return []byte("documento"), "tutela." + format, nil
}

func (f *fakeBackend) DeleteCase(ctx context.Context, caseId string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls++
	return f.deleteErr
}

func (f *fakeBackend) persistCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.persistPayloads)
}

func (f *fakeBackend) lastPersisted() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.persistPayloads) == 0 {
		return nil
	}
	return f.persistPayloads[len(f.persistPayloads)-1]
}

func newTestRuntime(backend Backend) *Runtime {
	return NewRuntime(backend, media.NewBridgeTransport(), nil, noopLogger{})
}
