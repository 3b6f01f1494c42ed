package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"clickstore_back_end/internal/models"

	"github.com/wneessen/go-mail"
)

// Mailer envoie les notifications de commande à l'administrateur de la
// boutique. Best-effort : l'échec est loggé par l'appelant, jamais réessayé.
type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
	adminTo  string
}

func NewMailerFromEnv() *Mailer {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil || port == 0 {
		port = 587
	}
	return &Mailer{
		host:     os.Getenv("SMTP_HOST"),
		port:     port,
		username: os.Getenv("SMTP_USERNAME"),
		password: os.Getenv("SMTP_PASSWORD"),
		from:     os.Getenv("SMTP_FROM"),
		adminTo:  os.Getenv("ADMIN_EMAIL"),
	}
}

// SendOrderNotification envoie à l'admin le récapitulatif {email, panier, total}.
func (m *Mailer) SendOrderNotification(customerEmail string, cart []models.CartItem, totalPrice float64) error {
	msg := mail.NewMsg()

	if err := msg.From(m.from); err != nil {
		return err
	}
	if err := msg.To(m.adminTo); err != nil {
		return err
	}
	msg.Subject("🛒 Nouvelle commande - Click Store")
	msg.SetBodyString(mail.TypeTextHTML, generateOrderNotificationHTML(customerEmail, cart, totalPrice))

	client, err := mail.NewClient(m.host,
		mail.WithPort(m.port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(m.username),
		mail.WithPassword(m.password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de la notification de commande à", m.adminTo)
	return client.DialAndSend(msg)
}

func generateOrderNotificationHTML(customerEmail string, cart []models.CartItem, totalPrice float64) string {
	itemsHTML := ""
	for _, item := range cart {
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td style="padding: 10px; border: 1px solid #ddd;">%s</td>
				<td style="padding: 10px; border: 1px solid #ddd;">%d</td>
				<td style="padding: 10px; border: 1px solid #ddd;">%.2f Dt</td>
				<td style="padding: 10px; border: 1px solid #ddd;">%.2f Dt</td>
			</tr>`, item.Name, item.Quantity, item.Price, item.Price*float64(item.Quantity))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head>
	<meta charset="UTF-8">
	<title>Nouvelle commande</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Nouvelle commande reçue</h2>
		<p>Client : <strong>%s</strong></p>

		<h3>Détails de la commande</h3>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f0f0f0;">
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Produit</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Quantité</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Prix unitaire</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Total</th>
				</tr>
			</thead>
			<tbody>%s</tbody>
		</table>

		<p style="font-size: 18px;"><strong>Total : %.2f Dt</strong></p>
		<p style="color: #999; font-size: 12px;">Cet email a été envoyé automatiquement par Click Store.</p>
	</div>
</body>
</html>`, customerEmail, itemsHTML, totalPrice)
}
