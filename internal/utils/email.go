package utils

import (
	"bytes"
	"fmt"
	"log"
	"os"

	"smartgear_back_end/internal/models"

	"github.com/wneessen/go-mail"
)

// SendConfirmationEmail envoie un e-mail HTML, avec le reçu PDF en pièce
// jointe s'il est fourni.
func SendConfirmationEmail(to, subject, htmlBody string, pdfAttachment []byte) error {
	msg := mail.NewMsg()

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "noreply@smartgear.lk"
	}
	if err := msg.From(from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	if pdfAttachment != nil {
		msg.AttachReader("recu_smartgear.pdf", bytes.NewReader(pdfAttachment))
	}

	client, err := mail.NewClient(os.Getenv("SMTP_HOST"),
		mail.WithPort(587),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail à", to)
	return client.DialAndSend(msg)
}

// GenerateOrderConfirmationHTML génère le HTML de confirmation de commande
func GenerateOrderConfirmationHTML(order models.Order) string {
	itemsHTML := ""
	for _, item := range order.Items {
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td>%s</td>
				<td>%s</td>
				<td>%d</td>
				<td>%s</td>
				<td>%s</td>
			</tr>`, item.ProductName, item.ProductBrand, item.Quantity,
			FormatPrice(item.PriceAtSale), FormatPrice(item.PriceAtSale*float64(item.Quantity)))
	}

	shippingLabel := FormatPrice(order.ShippingCost)
	if order.ShippingCost == 0 {
		shippingLabel = "Offerte"
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>Confirmation de commande</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Confirmation de votre commande</h2>
		<p>Bonjour %s,</p>
		<p>Votre commande <strong>%s</strong> a été enregistrée avec succès. Vous recevrez un
		e-mail de suivi dès son expédition.</p>

		<h3>Détails de la commande</h3>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f0f0f0;">
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Produit</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Marque</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Quantité</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Prix unitaire</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Total</th>
				</tr>
			</thead>
			<tbody>
				%s
			</tbody>
			<tfoot>
				<tr>
					<td colspan="4" style="padding: 10px; text-align: right;">Sous-total:</td>
					<td style="padding: 10px;">%s</td>
				</tr>
				<tr>
					<td colspan="4" style="padding: 10px; text-align: right;">Livraison:</td>
					<td style="padding: 10px;">%s</td>
				</tr>
				<tr>
					<td colspan="4" style="padding: 10px; text-align: right; font-weight: bold;">Total:</td>
					<td style="padding: 10px; font-weight: bold;">%s</td>
				</tr>
			</tfoot>
		</table>

		<p>Adresse de livraison : %s</p>

		<p style="margin-top: 30px; color: #555;">
			Cordialement,<br>
			<strong>L'équipe Smart Gear</strong>
		</p>
	</div>
</body>
</html>`, order.CustomerName, order.ID.String(), itemsHTML,
		FormatPrice(order.Subtotal), shippingLabel, FormatPrice(order.Total),
		order.ShippingAddress)
}

// SendOrderConfirmation envoie la confirmation avec le reçu PDF. Appelé en
// goroutine après le placement : un échec est loggé, jamais remonté au client.
func SendOrderConfirmation(order models.Order) {
	pdf, err := GenerateReceiptPDF(order)
	if err != nil {
		log.Printf("⚠️ Reçu PDF indisponible pour %s: %v", order.ID, err)
		pdf = nil // l'e-mail part quand même, sans pièce jointe
	}

	html := GenerateOrderConfirmationHTML(order)
	if err := SendConfirmationEmail(order.CustomerEmail, "Votre commande Smart Gear", html, pdf); err != nil {
		log.Printf("❌ Envoi confirmation échoué pour %s: %v", order.ID, err)
	}
}
