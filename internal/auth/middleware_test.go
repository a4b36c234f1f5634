package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"ideahub/internal/model"
)

type stubResolver struct {
	user    *model.User
	session *model.Session
	err     error
}

func (r *stubResolver) ResolveSession(ctx context.Context, token string) (*model.User, *model.Session, error) {
	if r.err != nil {
		return nil, nil, r.err
	}
	return r.user, r.session, nil
}

func newAuthedContext(t *testing.T, configure func(*http.Request)) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if configure != nil {
		configure(req)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestSessionMiddleware(t *testing.T) {
	user := &model.User{ID: uuid.New(), Name: "Ada"}
	session := &model.Session{ID: uuid.New(), Token: "tok", UserID: user.ID}

	okResolver := &stubResolver{user: user, session: session}
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	t.Run("bearer header authenticates", func(t *testing.T) {
		c, _ := newAuthedContext(t, func(req *http.Request) {
			req.Header.Set(echo.HeaderAuthorization, "Bearer tok")
		})

		err := SessionMiddleware(okResolver)(next)(c)

		assert.NoError(t, err)
		assert.Equal(t, user, UserFromContext(c))
		assert.Equal(t, session, SessionFromContext(c))
	})

	t.Run("cookie fallback authenticates", func(t *testing.T) {
		c, _ := newAuthedContext(t, func(req *http.Request) {
			req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "tok"})
		})

		err := SessionMiddleware(okResolver)(next)(c)

		assert.NoError(t, err)
		assert.Equal(t, user, UserFromContext(c))
	})

	t.Run("missing token is rejected", func(t *testing.T) {
		c, _ := newAuthedContext(t, nil)

		err := SessionMiddleware(okResolver)(next)(c)

		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})

	t.Run("resolver failure is rejected before the handler runs", func(t *testing.T) {
		c, _ := newAuthedContext(t, func(req *http.Request) {
			req.Header.Set(echo.HeaderAuthorization, "Bearer expired")
		})
		reached := false

		err := SessionMiddleware(&stubResolver{err: errors.New("expired")})(func(c echo.Context) error {
			reached = true
			return nil
		})(c)

		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
		assert.False(t, reached)
	})
}

func TestAdminMiddleware(t *testing.T) {
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	t.Run("admin passes", func(t *testing.T) {
		c, _ := newAuthedContext(t, nil)
		c.Set(ContextUserKey, &model.User{ID: uuid.New(), IsAdmin: true})

		assert.NoError(t, AdminMiddleware()(next)(c))
	})

	t.Run("non-admin is forbidden", func(t *testing.T) {
		c, _ := newAuthedContext(t, nil)
		c.Set(ContextUserKey, &model.User{ID: uuid.New()})

		err := AdminMiddleware()(next)(c)

		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusForbidden, httpErr.Code)
	})

	t.Run("unauthenticated is rejected", func(t *testing.T) {
		c, _ := newAuthedContext(t, nil)

		err := AdminMiddleware()(next)(c)

		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})
}
