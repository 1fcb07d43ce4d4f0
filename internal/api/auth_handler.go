package api

import (
	"errors"
	"net/http"
	"strings"

	"reservewise/internal/auth"
)

type AuthHandler struct {
	base
	auth     auth.Authenticator
	demoHint bool
}

func NewAuthHandler(a auth.Authenticator, renderer *Renderer, demoHint bool) *AuthHandler {
	return &AuthHandler{base: base{renderer: renderer, logger: renderer.logger}, auth: a, demoHint: demoHint}
}

type loginView struct {
	Email    string
	Error    string
	DemoHint bool
}

// Home sends signed-in users to the dashboard and everyone else to login.
func (h *AuthHandler) Home(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.auth.CurrentUser(r); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, auth.LoginPath, http.StatusSeeOther)
}

func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.auth.CurrentUser(r); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	h.renderer.Render(w, http.StatusOK, "login.html", Page{
		Title: "Sign in",
		Data:  loginView{DemoHint: h.demoHint},
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	email := strings.TrimSpace(r.PostForm.Get("email"))
	password := r.PostForm.Get("password")

	if _, err := h.auth.SignIn(w, r, email, password); err != nil {
		view := loginView{Email: email, Error: "Invalid email or password.", DemoHint: h.demoHint}
		status := http.StatusUnauthorized
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			h.logger.Error("sign in failed", "error", err)
			view.Error = "Something went wrong. Please try again."
			status = http.StatusInternalServerError
		}
		h.renderer.Render(w, status, "login.html", Page{Title: "Sign in", Data: view})
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.auth.SignOut(w, r)
	http.Redirect(w, r, auth.LoginPath, http.StatusSeeOther)
}
