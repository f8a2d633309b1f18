package sync

import (
	"WooWithERPNext/internal/erpstore"
	"WooWithERPNext/internal/wooapi/models"
	"WooWithERPNext/pkg/logging"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// buildTaxes resolves the default tax template and turns the remote tax
// lines into local tax rows, one per input line, charged on net total
// against the default tax account.
func (s *Service) buildTaxes(wcOrder *models.Order) (string, []erpstore.SalesOrderTax, error) {
	logger := logging.GetLogger()

	taxTemplate, err := s.store.DefaultTaxTemplate()
	if err != nil {
		return "", nil, errors.Wrap(err, "failed to resolve default tax template")
	}

	if len(wcOrder.TaxLines) == 0 {
		return taxTemplate, nil, nil
	}

	taxAccount, err := s.store.DefaultTaxAccount()
	if err != nil {
		return "", nil, errors.Wrap(err, "failed to resolve default tax account")
	}

	var taxes []erpstore.SalesOrderTax
	for _, taxLine := range wcOrder.TaxLines {
		rate, err := decimal.NewFromString(taxLine.Rate.String())
		if err != nil {
			return "", nil, errors.Wrapf(err, "failed to parse tax rate %q", taxLine.Rate.String())
		}
		taxes = append(taxes, erpstore.SalesOrderTax{
			ChargeType:  "On Net Total",
			AccountHead: taxAccount,
			Rate:        rate,
			Description: taxLine.Label,
		})
	}

	logger.Debugf("Tax info retrieved: template %s, %d tax lines", taxTemplate, len(taxes))
	return taxTemplate, taxes, nil
}
