// File path: internal/api/locale.go
package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/nicodishanthj/lqa-insight/internal/common"
	"github.com/nicodishanthj/lqa-insight/internal/locale"
)

const localeCookieMaxAge = 365 * 24 * 60 * 60

// localeMiddleware resolves the request locale from the cookie, then the
// Accept-Language header, then the configured default.
func (s *Server) localeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		loc := s.resolveLocale(r)
		next.ServeHTTP(w, r.WithContext(locale.NewContext(r.Context(), loc)))
	})
}

func (s *Server) resolveLocale(r *http.Request) locale.Locale {
	if cookie, err := r.Cookie(locale.CookieName); err == nil {
		if loc, ok := locale.Parse(cookie.Value); ok {
			return loc
		}
		common.Logger().Debug("api: ignoring unsupported locale cookie", "value", cookie.Value)
		return s.cfg.DefaultLocale
	}
	if header := strings.TrimSpace(r.Header.Get("Accept-Language")); header != "" {
		return locale.Negotiate(header, s.cfg.DefaultLocale)
	}
	return s.cfg.DefaultLocale
}

func (s *Server) handleLocale(w http.ResponseWriter, r *http.Request) {
	value := r.FormValue("locale")
	loc, ok := locale.Parse(value)
	if !ok {
		writeError(w, http.StatusBadRequest, fmt.Errorf("unsupported locale %q", value))
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     locale.CookieName,
		Value:    loc.String(),
		Path:     "/",
		MaxAge:   localeCookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	common.Logger().Info("api: locale selected", "locale", loc.String())
	done(w, r, http.StatusOK, map[string]string{"locale": loc.String()}, returnPath(r))
}

// returnPath sends the browser back to the page it came from when that page is
// on this server.
func returnPath(r *http.Request) string {
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Path == "" || (ref.Host != "" && ref.Host != r.Host) {
		return "/"
	}
	if ref.RawQuery != "" {
		return ref.Path + "?" + ref.RawQuery
	}
	return ref.Path
}
