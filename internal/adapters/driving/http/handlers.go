package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/OrtizDiego/versewise/internal/core/domain"
	"github.com/OrtizDiego/versewise/internal/core/ports/driving"
)

// ErrorResponse represents an API error response
// @Description API error response
type ErrorResponse struct {
	Error string `json:"error" example:"invalid request body"`
}

// StatusResponse represents a simple status response
// @Description Simple status response
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// VersionResponse represents the API version response
// @Description API version response
type VersionResponse struct {
	Version string `json:"version" example:"1.0.0"`
}

// Health endpoints

// handleHealth godoc
// @Summary      Health check
// @Description  Returns the health status of the API
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady godoc
// @Summary      Readiness check
// @Description  Returns the readiness status of the API (checks database and cache connections)
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Failure      503  {object}  ErrorResponse  "Dependency unavailable"
// @Router       /ready [get]
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}
	if s.redisClient != nil {
		if err := s.redisClient.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "cache unavailable")
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleVersion godoc
// @Summary      Get API version
// @Description  Returns the current API version
// @Tags         Health
// @Produce      json
// @Success      200  {object}  VersionResponse
// @Router       /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

// Auth endpoints

// handleLogin godoc
// @Summary      User login
// @Description  Authenticate with email and password to receive a JWT token
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request  body      domain.LoginRequest  true  "Login credentials"
// @Success      200      {object}  domain.LoginResponse
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Failure      401      {object}  ErrorResponse  "Invalid credentials or account disabled"
// @Failure      500      {object}  ErrorResponse  "Internal server error"
// @Router       /auth/login [post]
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.authService.Authenticate(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, "invalid credentials")
		case errors.Is(err, domain.ErrUnauthorized):
			writeError(w, http.StatusUnauthorized, "account disabled")
		default:
			writeError(w, http.StatusInternalServerError, "authentication failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleRefresh godoc
// @Summary      Refresh token
// @Description  Exchange a refresh token for a new JWT token
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request  body      domain.RefreshRequest  true  "Refresh token"
// @Success      200      {object}  domain.LoginResponse
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Failure      401      {object}  ErrorResponse  "Invalid refresh token"
// @Router       /auth/refresh [post]
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req domain.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.authService.RefreshToken(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleLogout godoc
// @Summary      Logout user
// @Description  Invalidate the current session token
// @Tags         Authentication
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  StatusResponse
// @Router       /auth/logout [post]
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := extractBearerToken(r)
	if token == "" {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}

	_ = s.authService.Logout(r.Context(), token)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// setupRequest carries the initial admin account details
type setupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// handleSetup godoc
// @Summary      Initial setup
// @Description  Create the initial admin user. This endpoint can only be called once when no users exist.
// @Tags         Setup
// @Accept       json
// @Produce      json
// @Param        request  body      setupRequest  true  "Admin user details"
// @Success      201      {object}  domain.LoginResponse
// @Failure      400      {object}  ErrorResponse  "Invalid input"
// @Failure      403      {object}  ErrorResponse  "Setup already complete"
// @Failure      500      {object}  ErrorResponse  "Setup failed"
// @Router       /setup [post]
func (s *Server) handleSetup(w http.ResponseWriter, r *http.Request) {
	var req setupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.authService.Setup(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "email, password, and name are required")
		case errors.Is(err, domain.ErrForbidden):
			writeError(w, http.StatusForbidden, "setup already complete")
		default:
			writeError(w, http.StatusInternalServerError, "setup failed")
		}
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// handleGetMe godoc
// @Summary      Get current user
// @Description  Get the currently authenticated user's identity
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.AuthContext
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Router       /me [get]
func (s *Server) handleGetMe(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	writeJSON(w, http.StatusOK, authCtx)
}

// Assistant endpoints

// questionRequest represents a free-form question
// @Description Free-form question request
type questionRequest struct {
	Question string `json:"question" example:"What does the Bible teach about grace?"`
}

// interpretRequest represents a verse interpretation request
// @Description Verse interpretation request
type interpretRequest struct {
	VerseReference string `json:"verse_reference" example:"John 3:16"`
	Question       string `json:"question" example:"What does 'eternal life' mean here?"`
}

// passagesRequest represents a passage search request
// @Description Passage search request
type passagesRequest struct {
	Query string           `json:"query" example:"love is patient"`
	Mode  domain.MatchType `json:"mode,omitempty" example:"semantic" enums:"exact,partial,semantic"`
}

// assistantMessages maps sentinel errors from the question-answering
// pipeline to user-facing messages. Lookup is ordered errors.Is matching,
// never message-text inspection.
var assistantMessages = []struct {
	sentinel error
	status   int
	message  string
}{
	{domain.ErrAPIKeyInvalid, http.StatusServiceUnavailable, "The AI service API key is invalid or missing. Please contact an administrator."},
	{domain.ErrAIUnavailable, http.StatusServiceUnavailable, "There was a connection error with the AI service. Please try again later."},
	{domain.ErrStoreUnavailable, http.StatusServiceUnavailable, "The study library is currently unavailable. Please try again later."},
	{domain.ErrInvalidInput, http.StatusBadRequest, "invalid input"},
}

// writeAssistantError resolves err against the message table. Unknown
// errors degrade to a generic 500 without leaking internals.
func writeAssistantError(w http.ResponseWriter, err error) {
	for _, m := range assistantMessages {
		if errors.Is(err, m.sentinel) {
			writeError(w, m.status, m.message)
			return
		}
	}
	writeError(w, http.StatusInternalServerError, "request failed")
}

// handleAskQuestion godoc
// @Summary      Ask a question
// @Description  Answer a free-form theological question grounded in the interpretation library
// @Tags         Assistant
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      questionRequest  true  "Question"
// @Success      200      {object}  domain.StructuredAnswer
// @Failure      400      {object}  ErrorResponse  "Invalid request or missing question"
// @Failure      401      {object}  ErrorResponse  "Unauthorized"
// @Failure      503      {object}  ErrorResponse  "AI service or library unavailable"
// @Router       /assistant/question [post]
func (s *Server) handleAskQuestion(w http.ResponseWriter, r *http.Request) {
	var req questionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Question == "" {
		writeError(w, http.StatusBadRequest, "question is required")
		return
	}

	answer, err := s.assistantService.AskQuestion(r.Context(), req.Question)
	if err != nil {
		writeAssistantError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, answer)
}

// handleInterpretVerse godoc
// @Summary      Interpret a verse
// @Description  Explain a verse reference in light of a follow-up question, grounded in the interpretation library
// @Tags         Assistant
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      interpretRequest  true  "Verse reference and question"
// @Success      200      {object}  domain.StructuredAnswer
// @Failure      400      {object}  ErrorResponse  "Invalid request or missing reference"
// @Failure      401      {object}  ErrorResponse  "Unauthorized"
// @Failure      503      {object}  ErrorResponse  "AI service or library unavailable"
// @Router       /assistant/interpret [post]
func (s *Server) handleInterpretVerse(w http.ResponseWriter, r *http.Request) {
	var req interpretRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.VerseReference == "" {
		writeError(w, http.StatusBadRequest, "verse reference is required")
		return
	}

	answer, err := s.assistantService.InterpretVerse(r.Context(), req.VerseReference, req.Question)
	if err != nil {
		writeAssistantError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, answer)
}

// handleSearchPassages godoc
// @Summary      Search passages
// @Description  Find Bible passages for a query. Exact and partial modes search the verse corpus lexically; semantic mode asks the model.
// @Tags         Assistant
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      passagesRequest  true  "Search query and mode"
// @Success      200      {array}   domain.Passage
// @Failure      400      {object}  ErrorResponse  "Invalid request or missing query"
// @Failure      401      {object}  ErrorResponse  "Unauthorized"
// @Failure      503      {object}  ErrorResponse  "AI service or corpus unavailable"
// @Router       /assistant/passages [post]
func (s *Server) handleSearchPassages(w http.ResponseWriter, r *http.Request) {
	var req passagesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	mode := req.Mode
	if mode == "" {
		mode = domain.MatchSemantic
	}

	passages, err := s.assistantService.SearchPassages(r.Context(), req.Query, mode)
	if err != nil {
		writeAssistantError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, passages)
}

// Bible endpoints

// handleListBooks godoc
// @Summary      List books
// @Description  Get the canonical book names in order
// @Tags         Bible
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   string
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Router       /bible/books [get]
func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.bibleService.Books(r.Context()))
}

// handleListTranslations godoc
// @Summary      List translations
// @Description  Get the translations the verse endpoints can serve
// @Tags         Bible
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Translation
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Router       /bible/translations [get]
func (s *Server) handleListTranslations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, domain.Translations)
}

// handleListChapters godoc
// @Summary      List chapters
// @Description  Get the chapter numbers of a book
// @Tags         Bible
// @Produce      json
// @Security     BearerAuth
// @Param        book  path      string  true  "Book name"
// @Success      200   {array}   int
// @Failure      401   {object}  ErrorResponse  "Unauthorized"
// @Failure      404   {object}  ErrorResponse  "Unknown book"
// @Router       /bible/{book}/chapters [get]
func (s *Server) handleListChapters(w http.ResponseWriter, r *http.Request) {
	book := r.PathValue("book")

	chapters, err := s.bibleService.Chapters(r.Context(), book)
	if err != nil {
		writeBibleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, chapters)
}

// handleGetVerses godoc
// @Summary      Get chapter verses
// @Description  Get the verse texts of a chapter in a translation (default kjv)
// @Tags         Bible
// @Produce      json
// @Security     BearerAuth
// @Param        book     path      string  true   "Book name"
// @Param        chapter  path      int     true   "Chapter number"
// @Param        version  query     string  false  "Translation ID"
// @Success      200      {array}   string
// @Failure      400      {object}  ErrorResponse  "Invalid chapter or version"
// @Failure      401      {object}  ErrorResponse  "Unauthorized"
// @Failure      404      {object}  ErrorResponse  "Unknown book or chapter"
// @Router       /bible/{book}/{chapter}/verses [get]
func (s *Server) handleGetVerses(w http.ResponseWriter, r *http.Request) {
	book, chapter, ok := chapterParams(w, r)
	if !ok {
		return
	}

	version := r.URL.Query().Get("version")
	if version == "" {
		version = "kjv"
	}

	verses, err := s.bibleService.Verses(r.Context(), book, chapter, version)
	if err != nil {
		writeBibleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, verses)
}

// handleGetGreekVerses godoc
// @Summary      Get Greek chapter text
// @Description  Get the Greek text of a chapter (Septuagint for OT, Textus Receptus for NT)
// @Tags         Bible
// @Produce      json
// @Security     BearerAuth
// @Param        book     path      string  true  "Book name"
// @Param        chapter  path      int     true  "Chapter number"
// @Success      200      {array}   string
// @Failure      400      {object}  ErrorResponse  "Invalid chapter"
// @Failure      401      {object}  ErrorResponse  "Unauthorized"
// @Failure      404      {object}  ErrorResponse  "Unknown book or chapter"
// @Router       /bible/{book}/{chapter}/greek [get]
func (s *Server) handleGetGreekVerses(w http.ResponseWriter, r *http.Request) {
	book, chapter, ok := chapterParams(w, r)
	if !ok {
		return
	}

	verses, err := s.bibleService.GreekVerses(r.Context(), book, chapter)
	if err != nil {
		writeBibleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, verses)
}

// handleGetHebrewVerses godoc
// @Summary      Get Hebrew chapter text
// @Description  Get the Westminster Leningrad Codex text of an Old Testament chapter
// @Tags         Bible
// @Produce      json
// @Security     BearerAuth
// @Param        book     path      string  true  "Book name"
// @Param        chapter  path      int     true  "Chapter number"
// @Success      200      {array}   string
// @Failure      400      {object}  ErrorResponse  "Invalid chapter or New Testament book"
// @Failure      401      {object}  ErrorResponse  "Unauthorized"
// @Failure      404      {object}  ErrorResponse  "Unknown book or chapter"
// @Router       /bible/{book}/{chapter}/hebrew [get]
func (s *Server) handleGetHebrewVerses(w http.ResponseWriter, r *http.Request) {
	book, chapter, ok := chapterParams(w, r)
	if !ok {
		return
	}

	verses, err := s.bibleService.HebrewVerses(r.Context(), book, chapter)
	if err != nil {
		writeBibleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, verses)
}

// handleDefineWord godoc
// @Summary      Define a word
// @Description  Look up a Greek or Hebrew word in the appropriate lexicon
// @Tags         Lexicon
// @Produce      json
// @Security     BearerAuth
// @Param        word  path      string  true  "Original-language word"
// @Success      200   {array}   domain.Definition
// @Failure      400   {object}  ErrorResponse  "Empty word"
// @Failure      401   {object}  ErrorResponse  "Unauthorized"
// @Failure      404   {object}  ErrorResponse  "No lexicon entry"
// @Router       /lexicon/{word} [get]
func (s *Server) handleDefineWord(w http.ResponseWriter, r *http.Request) {
	word := r.PathValue("word")
	if word == "" {
		writeError(w, http.StatusBadRequest, "missing word")
		return
	}

	defs, err := s.bibleService.Define(r.Context(), word)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "no definition found")
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "invalid word")
		default:
			writeError(w, http.StatusBadGateway, "lexicon lookup failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, defs)
}

// chapterParams extracts and validates the {book}/{chapter} path values.
// Writes the error response itself when parsing fails.
func chapterParams(w http.ResponseWriter, r *http.Request) (string, int, bool) {
	book := r.PathValue("book")

	chapter, err := strconv.Atoi(r.PathValue("chapter"))
	if err != nil || chapter < 1 {
		writeError(w, http.StatusBadRequest, "invalid chapter number")
		return "", 0, false
	}

	return book, chapter, true
}

// writeBibleError maps scripture lookup failures to HTTP statuses
func writeBibleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid request")
	default:
		writeError(w, http.StatusBadGateway, "scripture provider unavailable")
	}
}

// AI Settings endpoints

// handleGetAISettings godoc
// @Summary      Get AI settings
// @Description  Get AI provider configuration (admin only). API keys are blanked.
// @Tags         AI Settings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.AISettings
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      403  {object}  ErrorResponse  "Forbidden - admin only"
// @Failure      500  {object}  ErrorResponse  "Internal server error"
// @Router       /settings/ai [get]
func (s *Server) handleGetAISettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.settingsService.GetAISettings(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get AI settings")
		return
	}

	writeJSON(w, http.StatusOK, settings)
}

// handleUpdateAISettings godoc
// @Summary      Update AI settings
// @Description  Update AI provider configuration (admin only). This hot-swaps the affected AI services.
// @Tags         AI Settings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      driving.UpdateAISettingsRequest  true  "AI settings to update"
// @Success      200      {object}  domain.AISettings
// @Failure      400      {object}  ErrorResponse  "Invalid configuration or unsupported provider"
// @Failure      401      {object}  ErrorResponse  "Unauthorized"
// @Failure      403      {object}  ErrorResponse  "Forbidden - admin only"
// @Failure      502      {object}  ErrorResponse  "Provider rejected the configuration"
// @Failure      500      {object}  ErrorResponse  "Internal server error"
// @Router       /settings/ai [put]
func (s *Server) handleUpdateAISettings(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req driving.UpdateAISettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	settings, err := s.settingsService.UpdateAISettings(r.Context(), authCtx.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "invalid AI configuration")
		case errors.Is(err, domain.ErrInvalidProvider):
			writeError(w, http.StatusBadRequest, "unsupported AI provider")
		case errors.Is(err, domain.ErrAPIKeyInvalid):
			writeError(w, http.StatusBadGateway, "provider rejected the API key")
		case errors.Is(err, domain.ErrAIUnavailable):
			writeError(w, http.StatusBadGateway, "could not reach the AI provider")
		default:
			writeError(w, http.StatusInternalServerError, "failed to update AI settings")
		}
		return
	}

	writeJSON(w, http.StatusOK, settings)
}

// handleGetAIStatus godoc
// @Summary      Get AI status
// @Description  Get the current status of the embedding and generation services
// @Tags         AI Settings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  driving.AIStatus
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      500  {object}  ErrorResponse  "Internal server error"
// @Router       /settings/ai/status [get]
func (s *Server) handleGetAIStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.settingsService.Status(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get AI status")
		return
	}

	writeJSON(w, http.StatusOK, status)
}

// Helper functions

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
