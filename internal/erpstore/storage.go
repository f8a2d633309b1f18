package erpstore

const DB_SCHEMA = `CREATE TABLE Customer (
	ID integer PRIMARY KEY AUTOINCREMENT,
	Name text NOT NULL,
	CustomerType text NOT NULL DEFAULT 'Individual',
	CustomerGroup text NOT NULL DEFAULT '',
	Territory text NOT NULL DEFAULT '',
	EmailID text NOT NULL DEFAULT '',
	Phone text NOT NULL DEFAULT '',
	AddressLine1 text NOT NULL DEFAULT '',
	City text NOT NULL DEFAULT '',
	State text NOT NULL DEFAULT '',
	Pincode text NOT NULL DEFAULT '',
	Country text NOT NULL DEFAULT '',
	WooCustomerID text NOT NULL DEFAULT ''
);

CREATE TABLE Item (
	ID integer PRIMARY KEY AUTOINCREMENT,
	ItemCode text NOT NULL UNIQUE,
	ItemName text NOT NULL,
	Description text NOT NULL DEFAULT '',
	ItemGroup text NOT NULL DEFAULT 'All Item Groups',
	StockUOM text NOT NULL DEFAULT 'Nos',
	IsStockItem integer NOT NULL DEFAULT 1,
	IsSalesItem integer NOT NULL DEFAULT 1,
	IsPurchaseItem integer NOT NULL DEFAULT 1
);

CREATE TABLE SalesOrder (
	ID integer PRIMARY KEY AUTOINCREMENT,
	Name text NOT NULL UNIQUE,
	Customer text NOT NULL,
	WooOrderID text NOT NULL UNIQUE,
	Status text NOT NULL,
	DocStatus integer NOT NULL DEFAULT 0,
	TransactionDate text NOT NULL DEFAULT '',
	DeliveryDate text NOT NULL DEFAULT '',
	StoreLocation text NOT NULL DEFAULT '',
	TaxTemplate text NOT NULL DEFAULT '',
	Total text NOT NULL DEFAULT '0',
	Version integer NOT NULL DEFAULT 0
);

CREATE TABLE SalesOrderItem (
	ID integer PRIMARY KEY AUTOINCREMENT,
	ParentOrder text NOT NULL,
	ItemCode text NOT NULL,
	Qty real NOT NULL,
	Rate text NOT NULL,
	Amount text NOT NULL
);

CREATE TABLE SalesOrderTax (
	ID integer PRIMARY KEY AUTOINCREMENT,
	ParentOrder text NOT NULL,
	ChargeType text NOT NULL,
	AccountHead text NOT NULL,
	Rate text NOT NULL,
	Description text NOT NULL DEFAULT ''
);

CREATE TABLE SalesInvoice (
	ID integer PRIMARY KEY AUTOINCREMENT,
	Name text NOT NULL UNIQUE,
	SalesOrder text NOT NULL DEFAULT '',
	Status text NOT NULL DEFAULT 'Draft'
);

CREATE TABLE CustomerGroup (
	ID integer PRIMARY KEY AUTOINCREMENT,
	Name text NOT NULL UNIQUE,
	ParentGroup text NOT NULL DEFAULT '',
	IsGroup integer NOT NULL DEFAULT 0
);

CREATE TABLE Territory (
	ID integer PRIMARY KEY AUTOINCREMENT,
	Name text NOT NULL UNIQUE,
	ParentTerritory text NOT NULL DEFAULT '',
	IsGroup integer NOT NULL DEFAULT 0
);

CREATE TABLE Account (
	ID integer PRIMARY KEY AUTOINCREMENT,
	Name text NOT NULL UNIQUE,
	AccountType text NOT NULL DEFAULT '',
	IsDefault integer NOT NULL DEFAULT 0
);

CREATE TABLE TaxTemplate (
	ID integer PRIMARY KEY AUTOINCREMENT,
	Name text NOT NULL UNIQUE,
	IsDefault integer NOT NULL DEFAULT 0
);

CREATE TABLE SyncState (
	ID integer PRIMARY KEY,
	LastSync text NOT NULL DEFAULT '',
	LastStatus text NOT NULL DEFAULT ''
);

INSERT INTO TaxTemplate (Name, IsDefault) VALUES ('Default Sales Taxes', 1);
INSERT INTO Account (Name, AccountType, IsDefault) VALUES ('Sales Tax Payable', 'Tax', 1);
INSERT INTO SyncState (ID, LastSync, LastStatus) VALUES (1, '', '');
`
