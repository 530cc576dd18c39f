package web

import (
	"errors"
	"net/http"

	"github.com/khaledAlzeer/BlogWithUsers/internal/database"
)

func (app *app) register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.RenderHTML(w, r, "register.page.html", &HTMLData{Title: "Register"})
		return
	}

	if !app.validCSRF(r) {
		app.BadRequest(w)
		return
	}

	name := r.PostFormValue("name")
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")
	confirm := r.PostFormValue("confirm")

	formData := map[string]string{"name": name, "email": email}

	fe := formErrors{}
	fe.required("name", name)
	fe.required("email", email)
	fe.email("email", email)
	fe.required("password", password)
	fe.minLength("password", password, 6)
	fe.confirm("confirm", password, confirm)
	if !fe.valid() {
		app.RenderHTML(w, r, "register.page.html", &HTMLData{
			Title:      "Register",
			FormErrors: fe,
			FormData:   formData,
		})
		return
	}

	user, err := app.UserService.CreateUser(name, email, password)
	if err != nil {
		if errors.Is(err, database.ErrEmailExists) {
			app.setFlash(w, "You've already signed up with that email, log in instead!")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		app.RenderHTML(w, r, "register.page.html", &HTMLData{
			Title:     "Register",
			FormError: err.Error(),
			FormData:  formData,
		})
		return
	}

	app.infoLog.Printf("Registered user: %q (ID %d)", user.Name, user.ID)

	session, err := app.SessionService.CreateSession(user.ID)
	if err != nil {
		app.errorLog.Printf("Failed to create session for user %d: %v", user.ID, err)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	app.setSessionCookie(w, session.Token)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (app *app) login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.RenderHTML(w, r, "login.page.html", &HTMLData{Title: "Login"})
		return
	}

	if !app.validCSRF(r) {
		app.BadRequest(w)
		return
	}

	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	formData := map[string]string{"email": email}

	fe := formErrors{}
	fe.required("email", email)
	fe.email("email", email)
	fe.required("password", password)
	if !fe.valid() {
		app.RenderHTML(w, r, "login.page.html", &HTMLData{
			Title:      "Login",
			FormErrors: fe,
			FormData:   formData,
		})
		return
	}

	user, err := app.UserService.VerifyUser(email, password)
	if err != nil {
		app.RenderHTML(w, r, "login.page.html", &HTMLData{
			Title:     "Login",
			FormError: err.Error(),
			FormData:  formData,
		})
		return
	}

	app.infoLog.Printf("Login successful: id=%d, email=%q", user.ID, user.Email)

	session, err := app.SessionService.CreateSession(user.ID)
	if err != nil {
		app.errorLog.Printf("Failed to create session for user %d: %v", user.ID, err)
		app.ServerError(w, err)
		return
	}

	app.setSessionCookie(w, session.Token)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (app *app) logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.MethodNotAllowed(w, []string{"GET"})
		return
	}

	token := app.getSessionToken(r)
	if token != "" {
		if err := app.SessionService.DeleteSession(token); err != nil {
			app.errorLog.Printf("Failed to delete session: %v", err)
		}
	}

	app.clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
