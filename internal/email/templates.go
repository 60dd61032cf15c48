package email

import "fmt"

// WelcomeRequest builds the account-creation email for a new client. The
// temporary password is included because the first login forces a change.
func WelcomeRequest(to, name, tempPassword, appURL string) SendRequest {
	return SendRequest{
		To:      []string{to},
		Subject: "Bienvenido a FitBySuárez 🏋️",
		HTML: fmt.Sprintf(
			`<div style="font-family: Arial, sans-serif; padding: 20px;">`+
				`<h2>¡Bienvenido!</h2>`+
				`<p>Hola %s,</p>`+
				`<p>Tu cuenta ha sido creada.</p>`+
				`<p>Usuario: %s<br>Contraseña temporal: %s</p>`+
				`<a href="%s">Ir a la App</a>`+
				`</div>`,
			name, to, tempPassword, appURL),
	}
}

// PaymentReminderRequest builds the monthly payment reminder for a client.
func PaymentReminderRequest(to, name, dueDate string) SendRequest {
	return SendRequest{
		To:      []string{to},
		Subject: "Recordatorio de pago - FitBySuárez",
		HTML: fmt.Sprintf(
			`<div style="font-family: Arial, sans-serif; padding: 20px;">`+
				`<p>Hola %s,</p>`+
				`<p>Recordatorio amable de que tu mensualidad de FitBySuárez vence el %s.</p>`+
				`</div>`,
			name, dueDate),
	}
}
