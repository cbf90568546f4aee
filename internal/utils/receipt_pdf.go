package utils

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"os"
	"time"

	"smartgear_back_end/internal/models"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/skip2/go-qrcode"
)

// GenerateTrackingQR génère un QR de suivi de commande en base64 prêt à mettre
// dans <img src="...">
func GenerateTrackingQR(orderID string) (string, error) {
	trackingURL := fmt.Sprintf("%s/orders/%s", GetStorefrontBaseURL(), orderID)

	png, err := qrcode.Encode(trackingURL, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// RenderReceiptPDF charge la page reçu du front et l'imprime en PDF.
// frontendURL doit ressembler à: http://localhost:3000/receipt
func RenderReceiptPDF(frontendURL, orderID, qrBase64 string) ([]byte, error) {
	q := url.Values{}
	q.Set("id", orderID)
	q.Set("qr", qrBase64)

	fullURL := fmt.Sprintf("%s?%s", frontendURL, q.Encode())

	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	// timeout pour éviter de bloquer
	ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var pdfBuf []byte

	err := chromedp.Run(ctx,
		chromedp.Navigate(fullURL),
		chromedp.WaitVisible("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}

	return pdfBuf, nil
}

// GenerateReceiptPDF génère le reçu PDF d'une commande, QR de suivi inclus.
func GenerateReceiptPDF(order models.Order) ([]byte, error) {
	orderID := order.ID.String()

	qrBase64, err := GenerateTrackingQR(orderID)
	if err != nil {
		return nil, fmt.Errorf("erreur génération QR: %v", err)
	}

	return RenderReceiptPDF(GetReceiptBaseURL(), orderID, qrBase64)
}

// Helper: récupère l'URL de la page reçu du front depuis l'env
func GetReceiptBaseURL() string {
	u := os.Getenv("FRONTEND_RECEIPT_URL")
	if u == "" {
		// fallback local dev
		return "http://localhost:3000/receipt"
	}
	return u
}

// Helper: URL publique de la boutique (pages de suivi)
func GetStorefrontBaseURL() string {
	u := os.Getenv("STOREFRONT_URL")
	if u == "" {
		return "http://localhost:3000"
	}
	return u
}
