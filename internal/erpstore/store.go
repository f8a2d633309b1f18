package erpstore

import (
	"WooWithERPNext/internal/status"
	"WooWithERPNext/internal/syncerr"
	"WooWithERPNext/pkg/logging"
	"database/sql"
	"os"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

// Store is the back-office record store. Every mutation commits
// independently; the only multi-statement transaction is the sales-order
// insert with its child line and tax rows.
type Store struct {
	DB *sqlx.DB
}

func Exists(name string) bool {
	if _, err := os.Stat(name); err != nil {
		if os.IsNotExist(err) {
			return false
		}
	}
	return true
}

func CreateDB(dbname string) error {
	logger := logging.GetLogger()
	logger.Info("CreateDB:>Start")
	defer logger.Info("CreateDB:>End")

	db, err := sqlx.Open("sqlite3", dbname)
	if err != nil {
		return errors.Wrapf(err, "failed sqlx.Open(%s)", dbname)
	}
	defer func(db *sqlx.DB) {
		err := db.Close()
		if err != nil {
			logger.Error(err)
		}
	}(db)

	db.MustExec(DB_SCHEMA)
	logger.Info(dbname, " created")
	return nil
}

func NewStore(dbname string) (*Store, error) {
	db, err := sqlx.Connect("sqlite3", dbname)
	if err != nil {
		return nil, errors.Wrap(err, "failed sqlx.Connect")
	}
	return &Store{DB: db}, nil
}

// NewStoreInMemory opens a fresh in-memory store with the schema applied.
func NewStoreInMemory() (*Store, error) {
	db, err := sqlx.Connect("sqlite3", ":memory:")
	if err != nil {
		return nil, errors.Wrap(err, "failed sqlx.Connect")
	}
	if _, err := db.Exec(DB_SCHEMA); err != nil {
		return nil, errors.Wrap(err, "failed to apply schema")
	}
	return &Store{DB: db}, nil
}

func (s *Store) Close() error {
	return s.DB.Close()
}

// FindSalesOrderByWooID returns nil without error when no document carries
// the foreign order id.
func (s *Store) FindSalesOrderByWooID(wooOrderID string) (*SalesOrder, error) {
	var order SalesOrder
	err := s.DB.Get(&order, "SELECT * FROM SalesOrder WHERE WooOrderID = ?", wooOrderID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to find SalesOrder by WooOrderID %s", wooOrderID)
	}
	return &order, nil
}

func (s *Store) GetSalesOrder(name string) (*SalesOrder, error) {
	var order SalesOrder
	err := s.DB.Get(&order, "SELECT * FROM SalesOrder WHERE Name = ?", name)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get SalesOrder %s", name)
	}
	return &order, nil
}

// CreateSalesOrder inserts the document together with its line and tax rows
// in one transaction. The UNIQUE index on WooOrderID rejects a concurrent
// create for the same foreign id.
func (s *Store) CreateSalesOrder(order *SalesOrder, items []SalesOrderItem, taxes []SalesOrderTax) error {
	tx, err := s.DB.Beginx()
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}

	_, err = tx.NamedExec(`INSERT INTO SalesOrder
		(Name, Customer, WooOrderID, Status, DocStatus, TransactionDate, DeliveryDate, StoreLocation, TaxTemplate, Total, Version)
		VALUES (:Name, :Customer, :WooOrderID, :Status, :DocStatus, :TransactionDate, :DeliveryDate, :StoreLocation, :TaxTemplate, :Total, :Version)`,
		order)
	if err != nil {
		_ = tx.Rollback()
		return errors.Wrapf(err, "failed to insert SalesOrder %s", order.Name)
	}

	for i := range items {
		items[i].ParentOrder = order.Name
		_, err = tx.NamedExec(`INSERT INTO SalesOrderItem (ParentOrder, ItemCode, Qty, Rate, Amount)
			VALUES (:ParentOrder, :ItemCode, :Qty, :Rate, :Amount)`, &items[i])
		if err != nil {
			_ = tx.Rollback()
			return errors.Wrapf(err, "failed to insert SalesOrderItem %s", items[i].ItemCode)
		}
	}

	for i := range taxes {
		taxes[i].ParentOrder = order.Name
		_, err = tx.NamedExec(`INSERT INTO SalesOrderTax (ParentOrder, ChargeType, AccountHead, Rate, Description)
			VALUES (:ParentOrder, :ChargeType, :AccountHead, :Rate, :Description)`, &taxes[i])
		if err != nil {
			_ = tx.Rollback()
			return errors.Wrapf(err, "failed to insert SalesOrderTax %s", taxes[i].Description)
		}
	}

	return tx.Commit()
}

// UpdateSalesOrderStatus is a compare-and-swap on the document version. A
// stale version means another writer got there first; the caller reloads and
// retries.
func (s *Store) UpdateSalesOrderStatus(name string, newStatus status.OrderStatus, version int) error {
	res, err := s.DB.Exec(
		"UPDATE SalesOrder SET Status = ?, Version = Version + 1 WHERE Name = ? AND Version = ?",
		newStatus, name, version)
	if err != nil {
		return errors.Wrapf(err, "failed to update status of SalesOrder %s", name)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed RowsAffected")
	}
	if affected == 0 {
		return &syncerr.ConcurrencyError{OrderName: name}
	}
	return nil
}

// SubmitSalesOrder finalizes a freshly created document.
func (s *Store) SubmitSalesOrder(name string, version int) error {
	res, err := s.DB.Exec(
		"UPDATE SalesOrder SET DocStatus = ?, Version = Version + 1 WHERE Name = ? AND Version = ?",
		status.DocStatusSubmitted, name, version)
	if err != nil {
		return errors.Wrapf(err, "failed to submit SalesOrder %s", name)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed RowsAffected")
	}
	if affected == 0 {
		return &syncerr.ConcurrencyError{OrderName: name}
	}
	return nil
}

func (s *Store) UpdateSalesOrderStoreLocation(name, storeLocation string) error {
	_, err := s.DB.Exec(
		"UPDATE SalesOrder SET StoreLocation = ?, Version = Version + 1 WHERE Name = ?",
		storeLocation, name)
	return errors.Wrapf(err, "failed to update store location of SalesOrder %s", name)
}

func (s *Store) SalesOrderItems(name string) ([]SalesOrderItem, error) {
	var items []SalesOrderItem
	err := s.DB.Select(&items, "SELECT * FROM SalesOrderItem WHERE ParentOrder = ?", name)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to select items of SalesOrder %s", name)
	}
	return items, nil
}

func (s *Store) CountSalesOrdersByWooID(wooOrderID string) (int, error) {
	var n int
	err := s.DB.Get(&n, "SELECT COUNT(*) FROM SalesOrder WHERE WooOrderID = ?", wooOrderID)
	return n, errors.Wrap(err, "failed to count SalesOrder rows")
}

func (s *Store) FindCustomerByWooID(wooCustomerID string) (*Customer, error) {
	var customer Customer
	err := s.DB.Get(&customer, "SELECT * FROM Customer WHERE WooCustomerID = ?", wooCustomerID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to find Customer by WooCustomerID %s", wooCustomerID)
	}
	return &customer, nil
}

func (s *Store) CreateCustomer(c *Customer) error {
	_, err := s.DB.NamedExec(`INSERT INTO Customer
		(Name, CustomerType, CustomerGroup, Territory, EmailID, Phone, AddressLine1, City, State, Pincode, Country, WooCustomerID)
		VALUES (:Name, :CustomerType, :CustomerGroup, :Territory, :EmailID, :Phone, :AddressLine1, :City, :State, :Pincode, :Country, :WooCustomerID)`,
		c)
	return errors.Wrapf(err, "failed to insert Customer %s", c.Name)
}

func (s *Store) ExistsCustomerGroup(name string) (bool, error) {
	var n int
	err := s.DB.Get(&n, "SELECT COUNT(*) FROM CustomerGroup WHERE Name = ?", name)
	return n > 0, errors.Wrap(err, "failed to count CustomerGroup rows")
}

func (s *Store) CreateCustomerGroup(g *CustomerGroup) error {
	_, err := s.DB.NamedExec(
		"INSERT INTO CustomerGroup (Name, ParentGroup, IsGroup) VALUES (:Name, :ParentGroup, :IsGroup)", g)
	return errors.Wrapf(err, "failed to insert CustomerGroup %s", g.Name)
}

func (s *Store) ExistsTerritory(name string) (bool, error) {
	var n int
	err := s.DB.Get(&n, "SELECT COUNT(*) FROM Territory WHERE Name = ?", name)
	return n > 0, errors.Wrap(err, "failed to count Territory rows")
}

func (s *Store) CreateTerritory(t *Territory) error {
	_, err := s.DB.NamedExec(
		"INSERT INTO Territory (Name, ParentTerritory, IsGroup) VALUES (:Name, :ParentTerritory, :IsGroup)", t)
	return errors.Wrapf(err, "failed to insert Territory %s", t.Name)
}

func (s *Store) FindItemByCode(itemCode string) (*Item, error) {
	var item Item
	err := s.DB.Get(&item, "SELECT * FROM Item WHERE ItemCode = ?", itemCode)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to find Item by ItemCode %s", itemCode)
	}
	return &item, nil
}

func (s *Store) CreateItem(item *Item) error {
	_, err := s.DB.NamedExec(`INSERT INTO Item
		(ItemCode, ItemName, Description, ItemGroup, StockUOM, IsStockItem, IsSalesItem, IsPurchaseItem)
		VALUES (:ItemCode, :ItemName, :Description, :ItemGroup, :StockUOM, :IsStockItem, :IsSalesItem, :IsPurchaseItem)`,
		item)
	return errors.Wrapf(err, "failed to insert Item %s", item.ItemCode)
}

func (s *Store) DefaultTaxTemplate() (string, error) {
	var name string
	err := s.DB.Get(&name, "SELECT Name FROM TaxTemplate WHERE IsDefault = 1 LIMIT 1")
	if err == sql.ErrNoRows {
		return "", nil
	}
	return name, errors.Wrap(err, "failed to get default TaxTemplate")
}

func (s *Store) DefaultTaxAccount() (string, error) {
	var name string
	err := s.DB.Get(&name, "SELECT Name FROM Account WHERE IsDefault = 1 AND AccountType = 'Tax' LIMIT 1")
	if err == sql.ErrNoRows {
		return "", nil
	}
	return name, errors.Wrap(err, "failed to get default tax Account")
}

func (s *Store) GetSalesInvoice(name string) (*SalesInvoice, error) {
	var invoice SalesInvoice
	err := s.DB.Get(&invoice, "SELECT * FROM SalesInvoice WHERE Name = ?", name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get SalesInvoice %s", name)
	}
	return &invoice, nil
}

func (s *Store) CreateSalesInvoice(invoice *SalesInvoice) error {
	_, err := s.DB.NamedExec(
		"INSERT INTO SalesInvoice (Name, SalesOrder, Status) VALUES (:Name, :SalesOrder, :Status)", invoice)
	return errors.Wrapf(err, "failed to insert SalesInvoice %s", invoice.Name)
}

func (s *Store) GetSyncState() (*SyncState, error) {
	var state SyncState
	err := s.DB.Get(&state, "SELECT * FROM SyncState WHERE ID = 1")
	if err != nil {
		return nil, errors.Wrap(err, "failed to get SyncState")
	}
	return &state, nil
}

func (s *Store) SaveSyncState(lastSync, lastStatus string) error {
	_, err := s.DB.Exec("UPDATE SyncState SET LastSync = ?, LastStatus = ? WHERE ID = 1", lastSync, lastStatus)
	return errors.Wrap(err, "failed to save SyncState")
}

// SaveSyncStatus records the run outcome without touching the timestamp.
// Used when the fetch itself failed and no orders were processed.
func (s *Store) SaveSyncStatus(lastStatus string) error {
	_, err := s.DB.Exec("UPDATE SyncState SET LastStatus = ? WHERE ID = 1", lastStatus)
	return errors.Wrap(err, "failed to save SyncState")
}
