package jobs

import (
	"fmt"

	"github.com/aymanhs/souq/pkg/mail"
)

// PurchaseReceiptJob emails the buyer a receipt after a successful
// purchase. Sent off the request path so SMTP latency never delays the
// purchase response.
type PurchaseReceiptJob struct {
	OrderID      uint   `json:"order_id"`
	Email        string `json:"email"`
	BuyerName    string `json:"buyer_name"`
	ProductTitle string `json:"product_title"`
	Quantity     int    `json:"quantity"`
	TotalPrice   int64  `json:"total_price"` // minor units
}

func (j *PurchaseReceiptJob) Handle() error {
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Thanks for your purchase!</p>"+
			"<p>Order #%d — %d × %s for a total of %d.%02d</p>",
		j.BuyerName, j.OrderID, j.Quantity, j.ProductTitle,
		j.TotalPrice/100, j.TotalPrice%100,
	)

	return mail.To(j.Email).
		Subject(fmt.Sprintf("Your order #%d", j.OrderID)).
		Body(body).
		Send()
}
