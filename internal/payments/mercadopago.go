package payments

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"
)

// Checkout creates Mercado Pago checkout preferences for credit
// purchases. A nil *Checkout means online payments are not configured;
// callers fall back to manual payment methods.
type Checkout struct {
	prefs   preference.Client
	backURL string
}

func NewCheckout(accessToken, backURL string) (*Checkout, error) {
	if accessToken == "" {
		return nil, nil
	}
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}
	return &Checkout{
		prefs:   preference.NewClient(cfg),
		backURL: backURL,
	}, nil
}

func (ck *Checkout) Enabled() bool {
	return ck != nil
}

// CreatePreference builds a single-item checkout for a credits pack and
// returns the external reference and the payer-facing checkout URL.
func (ck *Checkout) CreatePreference(
	ctx context.Context,
	title string,
	credits int,
	price float64,
) (externalRef string, checkoutURL string, err error) {

	if ck == nil {
		return "", "", fmt.Errorf("pagos online no configurados")
	}

	externalRef = uuid.New().String()

	req := preference.Request{
		Items: []preference.ItemRequest{
			{
				Title:       title,
				Description: fmt.Sprintf("%d créditos", credits),
				Quantity:    1,
				UnitPrice:   price,
				CurrencyID:  "EUR",
			},
		},
		ExternalReference: externalRef,
	}
	if ck.backURL != "" {
		req.BackURLs = &preference.BackURLsRequest{
			Success: ck.backURL,
			Pending: ck.backURL,
			Failure: ck.backURL,
		}
	}

	resource, err := ck.prefs.Create(ctx, req)
	if err != nil {
		return "", "", fmt.Errorf("mercadopago preference: %w", err)
	}

	return externalRef, resource.InitPoint, nil
}
