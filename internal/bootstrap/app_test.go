package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-builder/internal/shared/config"
	"resume-builder/internal/users"
)

func testConfig() config.Config {
	return config.Config{
		Env:                "dev",
		LLMProvider:        "gemini",
		LLMTimeout:         time.Second,
		AnonymousUserEmail: "anonymous@test.local",
		PromptMaxWords:     80,
		PromptMaxChars:     600,
		AnonymousPromptCap: 100,
		ResumeCountTTL:     time.Minute,
	}
}

func do(app *App, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	return resp
}

func TestBuildInMemoryWithoutProvider(t *testing.T) {
	app, err := Build(testConfig())
	require.NoError(t, err)
	assert.Nil(t, app.DB)
	assert.Nil(t, app.LLM)

	resp := do(app, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = do(app, http.MethodPost, "/api/generate-resume", "", map[string]any{"experience": "I was a chef for five years", "lang": "en"})
	require.Equal(t, http.StatusOK, resp.Code)
	var gen struct {
		Fallback bool `json:"fallback"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &gen))
	assert.True(t, gen.Fallback)

	require.NoError(t, app.Tasks.Wait(context.Background()))
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	app, err := Build(testConfig())
	require.NoError(t, err)

	for _, path := range []string{"/api/experiences", "/api/life-data", "/api/resumes", "/api/me"} {
		resp := do(app, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.Code, path)
	}
	resp := do(app, http.MethodGet, "/api/experiences", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.JSONEq(t, `{"error":"invalid or expired token"}`, resp.Body.String())
}

func TestTokenFlowEndToEnd(t *testing.T) {
	app, err := Build(testConfig())
	require.NoError(t, err)
	ctx := context.Background()

	user, err := app.UsersService.Create(ctx, users.User{Email: "ada@example.com", FullName: "Ada"})
	require.NoError(t, err)
	token, err := app.Identity.IssueToken(user)
	require.NoError(t, err)

	resp := do(app, http.MethodPost, "/api/resumes", token, map[string]any{"resume": map[string]any{"name": "Ada"}, "isPublic": true})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	resp = do(app, http.MethodGet, "/api/resume-count", "", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"count":1}`, resp.Body.String())

	resp = do(app, http.MethodPost, "/api/life-data/skills", token, map[string]any{"name": "Go"})
	assert.Equal(t, http.StatusCreated, resp.Code)

	resp = do(app, http.MethodPost, "/api/delete-account", token, nil)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	resp = do(app, http.MethodGet, "/api/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
