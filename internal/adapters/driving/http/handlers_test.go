package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/OrtizDiego/versewise/internal/core/domain"
	"github.com/OrtizDiego/versewise/internal/core/ports/driving"
)

// Mock services for testing

type mockAuthService struct {
	authenticateFn  func(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)
	validateTokenFn func(ctx context.Context, token string) (*domain.AuthContext, error)
	refreshTokenFn  func(ctx context.Context, req domain.RefreshRequest) (*domain.LoginResponse, error)
	logoutFn        func(ctx context.Context, token string) error
	setupFn         func(ctx context.Context, email, password, name string) (*domain.LoginResponse, error)
}

func (m *mockAuthService) Authenticate(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	if m.authenticateFn != nil {
		return m.authenticateFn(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAuthService) ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error) {
	if m.validateTokenFn != nil {
		return m.validateTokenFn(ctx, token)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAuthService) RefreshToken(ctx context.Context, req domain.RefreshRequest) (*domain.LoginResponse, error) {
	if m.refreshTokenFn != nil {
		return m.refreshTokenFn(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAuthService) Logout(ctx context.Context, token string) error {
	if m.logoutFn != nil {
		return m.logoutFn(ctx, token)
	}
	return nil
}

func (m *mockAuthService) Setup(ctx context.Context, email, password, name string) (*domain.LoginResponse, error) {
	if m.setupFn != nil {
		return m.setupFn(ctx, email, password, name)
	}
	return nil, errors.New("not implemented")
}

type mockAssistantService struct {
	askQuestionFn    func(ctx context.Context, question string) (*domain.StructuredAnswer, error)
	interpretFn      func(ctx context.Context, ref, question string) (*domain.StructuredAnswer, error)
	searchPassagesFn func(ctx context.Context, query string, mode domain.MatchType) ([]domain.Passage, error)
}

func (m *mockAssistantService) AskQuestion(ctx context.Context, question string) (*domain.StructuredAnswer, error) {
	if m.askQuestionFn != nil {
		return m.askQuestionFn(ctx, question)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAssistantService) InterpretVerse(ctx context.Context, ref, question string) (*domain.StructuredAnswer, error) {
	if m.interpretFn != nil {
		return m.interpretFn(ctx, ref, question)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAssistantService) SearchPassages(ctx context.Context, query string, mode domain.MatchType) ([]domain.Passage, error) {
	if m.searchPassagesFn != nil {
		return m.searchPassagesFn(ctx, query, mode)
	}
	return nil, errors.New("not implemented")
}

type mockBibleService struct {
	chaptersFn     func(ctx context.Context, book string) ([]int, error)
	versesFn       func(ctx context.Context, book string, chapter int, version string) ([]string, error)
	greekVersesFn  func(ctx context.Context, book string, chapter int) ([]string, error)
	hebrewVersesFn func(ctx context.Context, book string, chapter int) ([]string, error)
	defineFn       func(ctx context.Context, word string) ([]domain.Definition, error)
}

func (m *mockBibleService) Books(ctx context.Context) []string {
	return domain.Books
}

func (m *mockBibleService) Chapters(ctx context.Context, book string) ([]int, error) {
	if m.chaptersFn != nil {
		return m.chaptersFn(ctx, book)
	}
	return nil, errors.New("not implemented")
}

func (m *mockBibleService) Verses(ctx context.Context, book string, chapter int, version string) ([]string, error) {
	if m.versesFn != nil {
		return m.versesFn(ctx, book, chapter, version)
	}
	return nil, errors.New("not implemented")
}

func (m *mockBibleService) GreekVerses(ctx context.Context, book string, chapter int) ([]string, error) {
	if m.greekVersesFn != nil {
		return m.greekVersesFn(ctx, book, chapter)
	}
	return nil, errors.New("not implemented")
}

func (m *mockBibleService) HebrewVerses(ctx context.Context, book string, chapter int) ([]string, error) {
	if m.hebrewVersesFn != nil {
		return m.hebrewVersesFn(ctx, book, chapter)
	}
	return nil, errors.New("not implemented")
}

func (m *mockBibleService) Define(ctx context.Context, word string) ([]domain.Definition, error) {
	if m.defineFn != nil {
		return m.defineFn(ctx, word)
	}
	return nil, errors.New("not implemented")
}

type mockSettingsService struct {
	getFn    func(ctx context.Context) (*domain.AISettings, error)
	updateFn func(ctx context.Context, updaterID string, req driving.UpdateAISettingsRequest) (*domain.AISettings, error)
	statusFn func(ctx context.Context) (*driving.AIStatus, error)
}

func (m *mockSettingsService) GetAISettings(ctx context.Context) (*domain.AISettings, error) {
	if m.getFn != nil {
		return m.getFn(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *mockSettingsService) UpdateAISettings(ctx context.Context, updaterID string, req driving.UpdateAISettingsRequest) (*domain.AISettings, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, updaterID, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockSettingsService) Status(ctx context.Context) (*driving.AIStatus, error) {
	if m.statusFn != nil {
		return m.statusFn(ctx)
	}
	return nil, errors.New("not implemented")
}

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(ctx context.Context) error {
	return m.err
}

// withAuthContext injects an auth context the way Authenticate does
func withAuthContext(r *http.Request, authCtx *domain.AuthContext) *http.Request {
	ctx := context.WithValue(r.Context(), authContextKey, authCtx)
	return r.WithContext(ctx)
}

// Helper function tests

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()

	data := map[string]string{"foo": "bar"}
	writeJSON(rr, http.StatusCreated, data)

	if rr.Code != http.StatusCreated {
		t.Errorf("expected status 201, got %d", rr.Code)
	}
	if rr.Header().Get("Content-Type") != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", rr.Header().Get("Content-Type"))
	}

	var response map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response["foo"] != "bar" {
		t.Errorf("expected foo 'bar', got %s", response["foo"])
	}
}

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()

	writeError(rr, http.StatusBadRequest, "invalid input")

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rr.Code)
	}

	var response map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response["error"] != "invalid input" {
		t.Errorf("expected error 'invalid input', got %s", response["error"])
	}
}

// Health endpoint tests

func TestHandleReady_AllHealthy(t *testing.T) {
	server := &Server{db: &mockPinger{}, redisClient: &mockPinger{}}

	req := httptest.NewRequest("GET", "/ready", nil)
	rr := httptest.NewRecorder()

	server.handleReady(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rr.Code)
	}
}

func TestHandleReady_DatabaseDown(t *testing.T) {
	server := &Server{db: &mockPinger{err: errors.New("connection refused")}}

	req := httptest.NewRequest("GET", "/ready", nil)
	rr := httptest.NewRecorder()

	server.handleReady(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", rr.Code)
	}
}

func TestHandleReady_NoRedis(t *testing.T) {
	// Redis is optional; a nil client must not fail readiness
	server := &Server{db: &mockPinger{}}

	req := httptest.NewRequest("GET", "/ready", nil)
	rr := httptest.NewRecorder()

	server.handleReady(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rr.Code)
	}
}

// Auth endpoint tests

func TestHandleLogin_InvalidJSON(t *testing.T) {
	server := &Server{}

	req := httptest.NewRequest("POST", "/api/v1/auth/login", bytes.NewBufferString("invalid json"))
	rr := httptest.NewRecorder()

	server.handleLogin(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rr.Code)
	}
}

func TestHandleLogin_Success(t *testing.T) {
	expiry := time.Now().Add(15 * time.Minute)
	server := &Server{
		authService: &mockAuthService{
			authenticateFn: func(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
				if req.Email != "admin@example.com" {
					t.Errorf("unexpected email %q", req.Email)
				}
				return &domain.LoginResponse{Token: "jwt-token", ExpiresAt: expiry}, nil
			},
		},
	}

	body, _ := json.Marshal(domain.LoginRequest{Email: "admin@example.com", Password: "secret"})
	req := httptest.NewRequest("POST", "/api/v1/auth/login", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()

	server.handleLogin(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var response domain.LoginResponse
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Token != "jwt-token" {
		t.Errorf("expected token 'jwt-token', got %s", response.Token)
	}
}

func TestHandleLogin_InvalidCredentials(t *testing.T) {
	server := &Server{
		authService: &mockAuthService{
			authenticateFn: func(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
				return nil, domain.ErrInvalidCredentials
			},
		},
	}

	body, _ := json.Marshal(domain.LoginRequest{Email: "admin@example.com", Password: "wrong"})
	req := httptest.NewRequest("POST", "/api/v1/auth/login", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()

	server.handleLogin(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rr.Code)
	}
}

func TestHandleLogin_AccountDisabled(t *testing.T) {
	server := &Server{
		authService: &mockAuthService{
			authenticateFn: func(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
				return nil, domain.ErrUnauthorized
			},
		},
	}

	body, _ := json.Marshal(domain.LoginRequest{Email: "former@example.com", Password: "secret"})
	req := httptest.NewRequest("POST", "/api/v1/auth/login", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()

	server.handleLogin(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rr.Code)
	}

	var response map[string]string
	_ = json.NewDecoder(rr.Body).Decode(&response)
	if response["error"] != "account disabled" {
		t.Errorf("expected error 'account disabled', got %s", response["error"])
	}
}

func TestHandleRefresh_Success(t *testing.T) {
	server := &Server{
		authService: &mockAuthService{
			refreshTokenFn: func(ctx context.Context, req domain.RefreshRequest) (*domain.LoginResponse, error) {
				return &domain.LoginResponse{Token: "new-token"}, nil
			},
		},
	}

	body, _ := json.Marshal(domain.RefreshRequest{RefreshToken: "refresh-token"})
	req := httptest.NewRequest("POST", "/api/v1/auth/refresh", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()

	server.handleRefresh(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rr.Code)
	}
}

func TestHandleRefresh_InvalidToken(t *testing.T) {
	server := &Server{
		authService: &mockAuthService{
			refreshTokenFn: func(ctx context.Context, req domain.RefreshRequest) (*domain.LoginResponse, error) {
				return nil, domain.ErrTokenInvalid
			},
		},
	}

	body, _ := json.Marshal(domain.RefreshRequest{RefreshToken: "garbage"})
	req := httptest.NewRequest("POST", "/api/v1/auth/refresh", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()

	server.handleRefresh(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rr.Code)
	}
}

func TestHandleLogout_NoToken(t *testing.T) {
	server := &Server{}

	req := httptest.NewRequest("POST", "/api/v1/auth/logout", nil)
	rr := httptest.NewRecorder()

	server.handleLogout(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rr.Code)
	}
}

func TestHandleLogout_WithToken(t *testing.T) {
	var loggedOut string
	server := &Server{
		authService: &mockAuthService{
			logoutFn: func(ctx context.Context, token string) error {
				loggedOut = token
				return nil
			},
		},
	}

	req := httptest.NewRequest("POST", "/api/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer session-token")
	rr := httptest.NewRecorder()

	server.handleLogout(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rr.Code)
	}
	if loggedOut != "session-token" {
		t.Errorf("expected logout of 'session-token', got %q", loggedOut)
	}
}

func TestHandleSetup_Success(t *testing.T) {
	server := &Server{
		authService: &mockAuthService{
			setupFn: func(ctx context.Context, email, password, name string) (*domain.LoginResponse, error) {
				return &domain.LoginResponse{Token: "first-admin-token"}, nil
			},
		},
	}

	body, _ := json.Marshal(setupRequest{Email: "admin@example.com", Password: "secret", Name: "Admin"})
	req := httptest.NewRequest("POST", "/api/v1/setup", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()

	server.handleSetup(rr, req)

	if rr.Code != http.StatusCreated {
		t.Errorf("expected status 201, got %d", rr.Code)
	}
}

func TestHandleSetup_AlreadyComplete(t *testing.T) {
	server := &Server{
		authService: &mockAuthService{
			setupFn: func(ctx context.Context, email, password, name string) (*domain.LoginResponse, error) {
				return nil, domain.ErrForbidden
			},
		},
	}

	body, _ := json.Marshal(setupRequest{Email: "admin@example.com", Password: "secret", Name: "Admin"})
	req := httptest.NewRequest("POST", "/api/v1/setup", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()

	server.handleSetup(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Errorf("expected status 403, got %d", rr.Code)
	}
}

func TestHandleGetMe_Success(t *testing.T) {
	server := &Server{}

	req := httptest.NewRequest("GET", "/api/v1/me", nil)
	req = withAuthContext(req, &domain.AuthContext{UserID: "user-1", Email: "reader@example.com", Role: domain.RoleMember})
	rr := httptest.NewRecorder()

	server.handleGetMe(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var response domain.AuthContext
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.UserID != "user-1" {
		t.Errorf("expected user-1, got %s", response.UserID)
	}
}

func TestHandleGetMe_NoAuthContext(t *testing.T) {
	server := &Server{}

	req := httptest.NewRequest("GET", "/api/v1/me", nil)
	rr := httptest.NewRecorder()

	server.handleGetMe(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rr.Code)
	}
}

// Assistant endpoint tests

func TestHandleAskQuestion_InvalidJSON(t *testing.T) {
	server := &Server{}

	req := httptest.NewRequest("POST", "/api/v1/assistant/question", bytes.NewBufferString("invalid json"))
	rr := httptest.NewRecorder()

	server.handleAskQuestion(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rr.Code)
	}
}

func TestHandleAskQuestion_EmptyQuestion(t *testing.T) {
	server := &Server{}

	body, _ := json.Marshal(questionRequest{Question: ""})
	req := httptest.NewRequest("POST", "/api/v1/assistant/question", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()

	server.handleAskQuestion(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rr.Code)
	}

	var response map[string]string
	_ = json.NewDecoder(rr.Body).Decode(&response)
	if response["error"] != "question is required" {
		t.Errorf("expected error 'question is required', got %s", response["error"])
	}
}

func TestHandleAskQuestion_Success(t *testing.T) {
	server := &Server{
		assistantService: &mockAssistantService{
			askQuestionFn: func(ctx context.Context, question string) (*domain.StructuredAnswer, error) {
				return &domain.StructuredAnswer{
					Answer:      "Grace is unmerited favor.",
					SourceFiles: []string{"romans-commentary.md"},
				}, nil
			},
		},
	}

	body, _ := json.Marshal(questionRequest{Question: "What is grace?"})
	req := httptest.NewRequest("POST", "/api/v1/assistant/question", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()

	server.handleAskQuestion(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var response domain.StructuredAnswer
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Answer != "Grace is unmerited favor." {
		t.Errorf("unexpected answer %q", response.Answer)
	}
	if len(response.SourceFiles) != 1 {
		t.Errorf("expected 1 source file, got %d", len(response.SourceFiles))
	}
}

func TestHandleAskQuestion_ErrorMessages(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "invalid api key",
			err:        domain.ErrAPIKeyInvalid,
			wantStatus: http.StatusServiceUnavailable,
			wantMsg:    "The AI service API key is invalid or missing. Please contact an administrator.",
		},
		{
			name:       "ai unreachable",
			err:        domain.ErrAIUnavailable,
			wantStatus: http.StatusServiceUnavailable,
			wantMsg:    "There was a connection error with the AI service. Please try again later.",
		},
		{
			name:       "store down",
			err:        domain.ErrStoreUnavailable,
			wantStatus: http.StatusServiceUnavailable,
			wantMsg:    "The study library is currently unavailable. Please try again later.",
		},
		{
			name:       "unknown error",
			err:        errors.New("something strange"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "request failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := &Server{
				assistantService: &mockAssistantService{
					askQuestionFn: func(ctx context.Context, question string) (*domain.StructuredAnswer, error) {
						return nil, tt.err
					},
				},
			}

			body, _ := json.Marshal(questionRequest{Question: "What is grace?"})
			req := httptest.NewRequest("POST", "/api/v1/assistant/question", bytes.NewBuffer(body))
			rr := httptest.NewRecorder()

			server.handleAskQuestion(rr, req)

			if rr.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rr.Code)
			}

			var response map[string]string
			_ = json.NewDecoder(rr.Body).Decode(&response)
			if response["error"] != tt.wantMsg {
				t.Errorf("expected message %q, got %q", tt.wantMsg, response["error"])
			}
		})
	}
}

func TestHandleAskQuestion_WrappedErrorStillMatches(t *testing.T) {
	// Services wrap sentinels with context; the lookup must match through
	// the wrapping, not on message text
	server := &Server{
		assistantService: &mockAssistantService{
			askQuestionFn: func(ctx context.Context, question string) (*domain.StructuredAnswer, error) {
				return nil, errors.Join(errors.New("embed query"), domain.ErrAIUnavailable)
			},
		},
	}

	body, _ := json.Marshal(questionRequest{Question: "What is grace?"})
	req := httptest.NewRequest("POST", "/api/v1/assistant/question", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()

	server.handleAskQuestion(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", rr.Code)
	}
}

func TestHandleInterpretVerse_MissingReference(t *testing.T) {
	server := &Server{}

	body, _ := json.Marshal(interpretRequest{Question: "What does it mean?"})
	req := httptest.NewRequest("POST", "/api/v1/assistant/interpret", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()

	server.handleInterpretVerse(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rr.Code)
	}
}

func TestHandleInterpretVerse_Success(t *testing.T) {
	server := &Server{
		assistantService: &mockAssistantService{
			interpretFn: func(ctx context.Context, ref, question string) (*domain.StructuredAnswer, error) {
				if ref != "John 3:16" {
					t.Errorf("unexpected reference %q", ref)
				}
				return &domain.StructuredAnswer{Answer: "It speaks of God's love."}, nil
			},
		},
	}

	body, _ := json.Marshal(interpretRequest{VerseReference: "John 3:16", Question: "What is the focus?"})
	req := httptest.NewRequest("POST", "/api/v1/assistant/interpret", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()

	server.handleInterpretVerse(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rr.Code)
	}
}

func TestHandleSearchPassages_EmptyQuery(t *testing.T) {
	server := &Server{}

	body, _ := json.Marshal(passagesRequest{Query: ""})
	req := httptest.NewRequest("POST", "/api/v1/assistant/passages", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()

	server.handleSearchPassages(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rr.Code)
	}
}

func TestHandleSearchPassages_DefaultsToSemantic(t *testing.T) {
	var gotMode domain.MatchType
	server := &Server{
		assistantService: &mockAssistantService{
			searchPassagesFn: func(ctx context.Context, query string, mode domain.MatchType) ([]domain.Passage, error) {
				gotMode = mode
				return []domain.Passage{}, nil
			},
		},
	}

	body, _ := json.Marshal(passagesRequest{Query: "love is patient"})
	req := httptest.NewRequest("POST", "/api/v1/assistant/passages", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()

	server.handleSearchPassages(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rr.Code)
	}
	if gotMode != domain.MatchSemantic {
		t.Errorf("expected semantic mode, got %q", gotMode)
	}
}

func TestHandleSearchPassages_ExactMode(t *testing.T) {
	server := &Server{
		assistantService: &mockAssistantService{
			searchPassagesFn: func(ctx context.Context, query string, mode domain.MatchType) ([]domain.Passage, error) {
				if mode != domain.MatchExact {
					t.Errorf("expected exact mode, got %q", mode)
				}
				return []domain.Passage{
					{Book: "1 Corinthians", Chapter: 13, Verses: []int{4}, Text: "Charity suffereth long, and is kind"},
				}, nil
			},
		},
	}

	body, _ := json.Marshal(passagesRequest{Query: "Charity suffereth long, and is kind", Mode: domain.MatchExact})
	req := httptest.NewRequest("POST", "/api/v1/assistant/passages", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()

	server.handleSearchPassages(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var passages []domain.Passage
	if err := json.NewDecoder(rr.Body).Decode(&passages); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(passages) != 1 || passages[0].Book != "1 Corinthians" {
		t.Errorf("unexpected passages %+v", passages)
	}
}

// Bible endpoint tests

func TestHandleListBooks(t *testing.T) {
	server := &Server{bibleService: &mockBibleService{}}

	req := httptest.NewRequest("GET", "/api/v1/bible/books", nil)
	rr := httptest.NewRecorder()

	server.handleListBooks(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var books []string
	if err := json.NewDecoder(rr.Body).Decode(&books); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(books) != 66 {
		t.Errorf("expected 66 books, got %d", len(books))
	}
}

func TestHandleListTranslations(t *testing.T) {
	server := &Server{}

	req := httptest.NewRequest("GET", "/api/v1/bible/translations", nil)
	rr := httptest.NewRecorder()

	server.handleListTranslations(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var translations []domain.Translation
	if err := json.NewDecoder(rr.Body).Decode(&translations); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(translations) != 5 {
		t.Errorf("expected 5 translations, got %d", len(translations))
	}
}

func TestHandleListChapters_UnknownBook(t *testing.T) {
	server := &Server{
		bibleService: &mockBibleService{
			chaptersFn: func(ctx context.Context, book string) ([]int, error) {
				return nil, domain.ErrNotFound
			},
		},
	}

	req := httptest.NewRequest("GET", "/api/v1/bible/Maccabees/chapters", nil)
	req.SetPathValue("book", "Maccabees")
	rr := httptest.NewRecorder()

	server.handleListChapters(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rr.Code)
	}
}

func TestHandleGetVerses_DefaultsToKJV(t *testing.T) {
	var gotVersion string
	server := &Server{
		bibleService: &mockBibleService{
			versesFn: func(ctx context.Context, book string, chapter int, version string) ([]string, error) {
				gotVersion = version
				return []string{"In the beginning God created the heaven and the earth."}, nil
			},
		},
	}

	req := httptest.NewRequest("GET", "/api/v1/bible/Genesis/1/verses", nil)
	req.SetPathValue("book", "Genesis")
	req.SetPathValue("chapter", "1")
	rr := httptest.NewRecorder()

	server.handleGetVerses(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if gotVersion != "kjv" {
		t.Errorf("expected default version kjv, got %q", gotVersion)
	}
}

func TestHandleGetVerses_InvalidChapter(t *testing.T) {
	server := &Server{}

	req := httptest.NewRequest("GET", "/api/v1/bible/Genesis/zero/verses", nil)
	req.SetPathValue("book", "Genesis")
	req.SetPathValue("chapter", "zero")
	rr := httptest.NewRecorder()

	server.handleGetVerses(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rr.Code)
	}
}

func TestHandleGetHebrewVerses_NewTestamentBook(t *testing.T) {
	server := &Server{
		bibleService: &mockBibleService{
			hebrewVersesFn: func(ctx context.Context, book string, chapter int) ([]string, error) {
				return nil, domain.ErrInvalidInput
			},
		},
	}

	req := httptest.NewRequest("GET", "/api/v1/bible/Matthew/1/hebrew", nil)
	req.SetPathValue("book", "Matthew")
	req.SetPathValue("chapter", "1")
	rr := httptest.NewRecorder()

	server.handleGetHebrewVerses(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rr.Code)
	}
}

func TestHandleGetGreekVerses_ProviderDown(t *testing.T) {
	server := &Server{
		bibleService: &mockBibleService{
			greekVersesFn: func(ctx context.Context, book string, chapter int) ([]string, error) {
				return nil, errors.New("connection timeout")
			},
		},
	}

	req := httptest.NewRequest("GET", "/api/v1/bible/John/1/greek", nil)
	req.SetPathValue("book", "John")
	req.SetPathValue("chapter", "1")
	rr := httptest.NewRecorder()

	server.handleGetGreekVerses(rr, req)

	if rr.Code != http.StatusBadGateway {
		t.Errorf("expected status 502, got %d", rr.Code)
	}
}

// Lexicon endpoint tests

func TestHandleDefineWord_Success(t *testing.T) {
	server := &Server{
		bibleService: &mockBibleService{
			defineFn: func(ctx context.Context, word string) ([]domain.Definition, error) {
				return []domain.Definition{{Lexeme: "λόγος", ShortDefinition: "word"}}, nil
			},
		},
	}

	req := httptest.NewRequest("GET", "/api/v1/lexicon/λόγος", nil)
	req.SetPathValue("word", "λόγος")
	rr := httptest.NewRecorder()

	server.handleDefineWord(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var defs []domain.Definition
	if err := json.NewDecoder(rr.Body).Decode(&defs); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(defs) != 1 || defs[0].Lexeme != "λόγος" {
		t.Errorf("unexpected definitions %+v", defs)
	}
}

func TestHandleDefineWord_NotFound(t *testing.T) {
	server := &Server{
		bibleService: &mockBibleService{
			defineFn: func(ctx context.Context, word string) ([]domain.Definition, error) {
				return nil, domain.ErrNotFound
			},
		},
	}

	req := httptest.NewRequest("GET", "/api/v1/lexicon/xyzzy", nil)
	req.SetPathValue("word", "xyzzy")
	rr := httptest.NewRecorder()

	server.handleDefineWord(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rr.Code)
	}
}

// AI settings endpoint tests

func TestHandleGetAISettings_Success(t *testing.T) {
	server := &Server{
		settingsService: &mockSettingsService{
			getFn: func(ctx context.Context) (*domain.AISettings, error) {
				s := domain.DefaultAISettings()
				return s, nil
			},
		},
	}

	req := httptest.NewRequest("GET", "/api/v1/settings/ai", nil)
	rr := httptest.NewRecorder()

	server.handleGetAISettings(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var response domain.AISettings
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.MatchThreshold != domain.DefaultMatchThreshold {
		t.Errorf("expected threshold %v, got %v", domain.DefaultMatchThreshold, response.MatchThreshold)
	}
}

func TestHandleUpdateAISettings_NoAuthContext(t *testing.T) {
	server := &Server{}

	req := httptest.NewRequest("PUT", "/api/v1/settings/ai", bytes.NewBufferString("{}"))
	rr := httptest.NewRecorder()

	server.handleUpdateAISettings(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rr.Code)
	}
}

func TestHandleUpdateAISettings_Success(t *testing.T) {
	var gotUpdater string
	server := &Server{
		settingsService: &mockSettingsService{
			updateFn: func(ctx context.Context, updaterID string, req driving.UpdateAISettingsRequest) (*domain.AISettings, error) {
				gotUpdater = updaterID
				s := domain.DefaultAISettings()
				return s, nil
			},
		},
	}

	body, _ := json.Marshal(driving.UpdateAISettingsRequest{})
	req := httptest.NewRequest("PUT", "/api/v1/settings/ai", bytes.NewBuffer(body))
	req = withAuthContext(req, &domain.AuthContext{UserID: "admin-1", Role: domain.RoleAdmin})
	rr := httptest.NewRecorder()

	server.handleUpdateAISettings(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rr.Code)
	}
	if gotUpdater != "admin-1" {
		t.Errorf("expected updater admin-1, got %q", gotUpdater)
	}
}

func TestHandleUpdateAISettings_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid input", domain.ErrInvalidInput, http.StatusBadRequest},
		{"unknown provider", domain.ErrInvalidProvider, http.StatusBadRequest},
		{"rejected key", domain.ErrAPIKeyInvalid, http.StatusBadGateway},
		{"provider unreachable", domain.ErrAIUnavailable, http.StatusBadGateway},
		{"store failure", errors.New("save failed"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := &Server{
				settingsService: &mockSettingsService{
					updateFn: func(ctx context.Context, updaterID string, req driving.UpdateAISettingsRequest) (*domain.AISettings, error) {
						return nil, tt.err
					},
				},
			}

			req := httptest.NewRequest("PUT", "/api/v1/settings/ai", bytes.NewBufferString("{}"))
			req = withAuthContext(req, &domain.AuthContext{UserID: "admin-1", Role: domain.RoleAdmin})
			rr := httptest.NewRecorder()

			server.handleUpdateAISettings(rr, req)

			if rr.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rr.Code)
			}
		})
	}
}

func TestHandleGetAIStatus_Success(t *testing.T) {
	server := &Server{
		settingsService: &mockSettingsService{
			statusFn: func(ctx context.Context) (*driving.AIStatus, error) {
				return &driving.AIStatus{EmbeddingConfigured: true, EmbeddingModel: "text-embedding-004"}, nil
			},
		},
	}

	req := httptest.NewRequest("GET", "/api/v1/settings/ai/status", nil)
	rr := httptest.NewRecorder()

	server.handleGetAIStatus(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var status driving.AIStatus
	if err := json.NewDecoder(rr.Body).Decode(&status); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !status.EmbeddingConfigured {
		t.Error("expected embedding to be configured")
	}
}
