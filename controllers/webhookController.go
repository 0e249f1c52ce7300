package controllers

import (
	"io"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/trottiparts/trottiparts-api/payments"
)

type paymentReconciler interface {
	HandleCompleted(correlationID, paymentIntentID string) (bool, error)
	HandleFailed(correlationID string)
}

// WebhookController receives the payment provider's signed callbacks.
type WebhookController struct {
	reconciler paymentReconciler
	secret     []byte
}

func NewWebhookController(reconciler paymentReconciler) *WebhookController {
	return &WebhookController{
		reconciler: reconciler,
		secret:     []byte(os.Getenv("WEBHOOK_SECRET")),
	}
}

// NewWebhookControllerWith overrides the secret, used by tests.
func NewWebhookControllerWith(reconciler paymentReconciler, secret []byte) *WebhookController {
	return &WebhookController{reconciler: reconciler, secret: secret}
}

// HandlePaymentWebhook verifies the signature over the raw body before
// anything else; only signature failures and unparseable payloads get a
// non-200, so the provider never retries an already-settled outcome.
func (wc *WebhookController) HandlePaymentWebhook(ctx *gin.Context) {
	body, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}
	defer ctx.Request.Body.Close()

	signature := ctx.GetHeader(payments.SignatureHeader)
	if !payments.VerifySignature(wc.secret, body, signature) {
		log.Println("Webhook signature verification failed")
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
		return
	}

	event, err := payments.ParseEvent(body)
	if err != nil {
		log.Println("Webhook parse error:", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid event payload"})
		return
	}

	processed := false
	switch event.Type {
	case payments.EventCheckoutCompleted:
		processed, err = wc.reconciler.HandleCompleted(event.CorrelationID(), event.Data.PaymentIntentID)
		if err != nil {
			// Transient store failure: let the provider redeliver, the
			// status guard makes the retry safe.
			log.Println("Webhook reconciliation error:", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "reconciliation failed"})
			return
		}
	case payments.EventPaymentFailed:
		wc.reconciler.HandleFailed(event.CorrelationID())
	default:
		log.Println("Ignoring webhook event type:", event.Type)
	}

	ctx.JSON(http.StatusOK, gin.H{
		"received":  true,
		"processed": processed,
	})
}
