package web

import (
	"net/http"
)

// contact renders the contact form and stores submissions. No account needed.
func (app *app) contact(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.RenderHTML(w, r, "contact.page.html", &HTMLData{Title: "Contact"})
		return
	}

	if !app.validCSRF(r) {
		app.BadRequest(w)
		return
	}

	name := r.PostFormValue("name")
	email := r.PostFormValue("email")
	phone := r.PostFormValue("phone")
	body := r.PostFormValue("message")

	formData := map[string]string{
		"name":    name,
		"email":   email,
		"phone":   phone,
		"message": body,
	}

	fe := formErrors{}
	fe.required("name", name)
	fe.required("email", email)
	fe.email("email", email)
	fe.required("message", body)
	if !fe.valid() {
		app.RenderHTML(w, r, "contact.page.html", &HTMLData{
			Title:      "Contact",
			FormErrors: fe,
			FormData:   formData,
		})
		return
	}

	message, err := app.MessageService.CreateMessage(name, email, phone, body)
	if err != nil {
		app.RenderHTML(w, r, "contact.page.html", &HTMLData{
			Title:     "Contact",
			FormError: err.Error(),
			FormData:  formData,
		})
		return
	}

	app.infoLog.Printf("Contact message received: ID=%d, From=%q", message.ID, message.Email)

	app.setFlash(w, "Your message has been sent successfully!")
	http.Redirect(w, r, "/contact", http.StatusSeeOther)
}

// adminMessages is the admin's contact inbox, newest first.
func (app *app) adminMessages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.MethodNotAllowed(w, []string{"GET"})
		return
	}

	messages, err := app.MessageService.GetAllMessages()
	if err != nil {
		app.ServerError(w, err)
		return
	}

	data := &HTMLData{
		Title:    "Messages",
		Messages: messages,
	}

	app.RenderHTML(w, r, "admin-messages.page.html", data)
}
