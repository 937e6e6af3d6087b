package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"intertask/internal/authmw"
)

func newIdentityRig(t *testing.T) (*gin.Engine, *memStore, *authmw.SessionAuth) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := newMemStore()
	db = store
	auth := authmw.NewSessionAuth([]byte("test-secret"))

	engine := gin.New()
	RegisterRoutes(engine, auth)

	return engine, store, auth
}

func postForm(engine *gin.Engine, path string, form url.Values, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: authmw.CookieName, Value: cookie})
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	return w
}

func joinForm(code, username string) url.Values {
	return url.Values{
		"member_code":  {code},
		"username":     {username},
		"display_name": {username},
		"password":     {"pass1234"},
	}
}

func TestMemberJoinEndpointConsumesCode(t *testing.T) {
	engine, _, _ := newIdentityRig(t)
	_, _, codes := seedTeam(t, 2)

	w := postForm(engine, "/member-join", joinForm(codes[0], "ana"), "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = postForm(engine, "/member-join", joinForm(codes[0], "ben"), "")
	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, w.Body.String(), "join code already used")
}

func TestMemberJoinEndpointRejectsBadUsername(t *testing.T) {
	engine, _, _ := newIdentityRig(t)
	_, _, codes := seedTeam(t, 1)

	w := postForm(engine, "/member-join", joinForm(codes[0], "bad name!"), "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "invalid username")
}

func TestCreateTeamEndpointSurvivesSessionReloadFailure(t *testing.T) {
	engine, store, auth := newIdentityRig(t)

	lead, err := RegisterLead(context.Background(), "lead1", "Lead One", "pass1234")
	require.NoError(t, err)

	token, err := auth.Mint(authmw.Session{UserID: lead.ID, Username: lead.Username, Role: authmw.RoleLead})
	require.NoError(t, err)

	store.failUserByID = true

	w := postForm(engine, "/lead/create-team", url.Values{"member_count": {"2"}}, token)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Contains(t, w.Body.String(), "member_codes")
	// no fresh cookie when the reload fails; the old session stays
	require.Empty(t, w.Header().Get("Set-Cookie"))
}
