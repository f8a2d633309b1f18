package sync

import (
	"WooWithERPNext/internal/erpstore"
	"WooWithERPNext/internal/syncerr"
	"WooWithERPNext/internal/wooapi/models"
	"WooWithERPNext/pkg/logging"
	"fmt"
	"strconv"
	"strings"
)

const (
	defaultCustomerGroup = "All Customer Groups"
	defaultTerritory     = "All Territories"
)

// getOrCreateCustomer resolves the local customer for a remote order. A
// present foreign customer id is the strong identity key; without one (or
// without a match) a new customer is created under a derived display name.
func (s *Service) getOrCreateCustomer(wcOrder *models.Order) (string, error) {
	logger := logging.GetLogger()

	var wooCustomerID string
	if wcOrder.CustomerID != 0 {
		wooCustomerID = strconv.Itoa(wcOrder.CustomerID)

		existing, err := s.store.FindCustomerByWooID(wooCustomerID)
		if err != nil {
			return "", &syncerr.ResolutionError{Entity: "customer", Key: wooCustomerID, Err: err}
		}
		if existing != nil {
			logger.Infof("Found existing customer by WooCommerce ID %s: %s", wooCustomerID, existing.Name)
			return existing.Name, nil
		}
		logger.Infof("No customer found with WooCustomerID %s, creating a new one", wooCustomerID)
	}

	if err := s.ensureCustomerDefaults(); err != nil {
		return "", err
	}

	customerName := deriveCustomerName(wcOrder.Billing)

	customer := &erpstore.Customer{
		Name:          customerName,
		CustomerType:  "Individual",
		CustomerGroup: defaultCustomerGroup,
		Territory:     defaultTerritory,
		EmailID:       wcOrder.Billing.Email,
		Phone:         wcOrder.Billing.Phone,
		AddressLine1:  wcOrder.Billing.Address1,
		City:          wcOrder.Billing.City,
		State:         wcOrder.Billing.State,
		Pincode:       wcOrder.Billing.Postcode,
		Country:       wcOrder.Billing.Country,
		WooCustomerID: wooCustomerID,
	}
	if err := s.store.CreateCustomer(customer); err != nil {
		return "", &syncerr.ResolutionError{Entity: "customer", Key: customerName, Err: err}
	}

	logger.Infof("Customer %s created", customerName)
	return customerName, nil
}

// ensureCustomerDefaults lazily creates the reference records new customers
// hang off. A concurrent creator winning the race counts as success.
func (s *Service) ensureCustomerDefaults() error {
	exists, err := s.store.ExistsCustomerGroup(defaultCustomerGroup)
	if err != nil {
		return &syncerr.ResolutionError{Entity: "customer group", Key: defaultCustomerGroup, Err: err}
	}
	if !exists {
		err := s.store.CreateCustomerGroup(&erpstore.CustomerGroup{
			Name:        defaultCustomerGroup,
			ParentGroup: defaultCustomerGroup,
		})
		if err != nil {
			if again, checkErr := s.store.ExistsCustomerGroup(defaultCustomerGroup); checkErr != nil || !again {
				return &syncerr.ResolutionError{Entity: "customer group", Key: defaultCustomerGroup, Err: err}
			}
		}
	}

	exists, err = s.store.ExistsTerritory(defaultTerritory)
	if err != nil {
		return &syncerr.ResolutionError{Entity: "territory", Key: defaultTerritory, Err: err}
	}
	if !exists {
		err := s.store.CreateTerritory(&erpstore.Territory{
			Name:            defaultTerritory,
			ParentTerritory: defaultTerritory,
		})
		if err != nil {
			if again, checkErr := s.store.ExistsTerritory(defaultTerritory); checkErr != nil || !again {
				return &syncerr.ResolutionError{Entity: "territory", Key: defaultTerritory, Err: err}
			}
		}
	}

	return nil
}

// deriveCustomerName falls from billing names to the email local-part to a
// random placeholder, never returning an empty name.
func deriveCustomerName(billing *models.Billing) string {
	firstName := strings.TrimSpace(billing.FirstName)
	lastName := strings.TrimSpace(billing.LastName)

	customerName := strings.TrimSpace(firstName + " " + lastName)
	if customerName == "" {
		customerName = strings.SplitN(billing.Email, "@", 2)[0]
	}
	if customerName == "" {
		customerName = fmt.Sprintf("WooCommerce Customer %s", randomSuffix(4))
	}
	return customerName
}
