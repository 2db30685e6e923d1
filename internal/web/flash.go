package web

import (
	"encoding/base64"
	"net/http"
	"strings"
)

const flashCookie = "sp_flash"

// flash is a one-shot alert shown on the next rendered page.
type flash struct {
	Kind    string // success or error
	Message string
}

func setFlash(w http.ResponseWriter, kind, msg string) {
	v := base64.RawURLEncoding.EncodeToString([]byte(kind + "|" + msg))
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    v,
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash reads and clears the flash cookie.
func popFlash(w http.ResponseWriter, r *http.Request) flash {
	c, err := r.Cookie(flashCookie)
	if err != nil {
		return flash{}
	}
	http.SetCookie(w, &http.Cookie{Name: flashCookie, Value: "", Path: "/", MaxAge: -1})
	b, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return flash{}
	}
	kind, msg, ok := strings.Cut(string(b), "|")
	if !ok {
		return flash{}
	}
	return flash{Kind: kind, Message: msg}
}

// redirectWith sets a flash and redirects with 303 so the browser follows
// with a GET.
func redirectWith(w http.ResponseWriter, r *http.Request, to, kind, msg string) {
	if msg != "" {
		setFlash(w, kind, msg)
	}
	http.Redirect(w, r, to, http.StatusSeeOther)
}
