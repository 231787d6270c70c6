//-------------------------------------------------------------------------
//
// Salestar Warehouse Builder
//
// Copyright (c) 2025 - 2026, the Salestar authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package warehouse

// Schema SQL for the sales star schema. Dimensions first, then the
// fact table whose foreign keys reference them.
const createSchemaSQL = `
CREATE TABLE dim_date (
    date_id    INTEGER PRIMARY KEY,
    order_date DATE NOT NULL,
    year       INTEGER NOT NULL,
    month      INTEGER NOT NULL,
    month_name VARCHAR(3) NOT NULL,
    quarter    CHAR(2) NOT NULL
);

CREATE TABLE dim_region (
    region_id   INTEGER PRIMARY KEY,
    region_name TEXT NOT NULL UNIQUE
);

CREATE TABLE dim_channel (
    channel_id   INTEGER PRIMARY KEY,
    channel_name TEXT NOT NULL UNIQUE
);

CREATE TABLE dim_customer_segment (
    segment_id   INTEGER PRIMARY KEY,
    segment_name TEXT NOT NULL UNIQUE
);

CREATE TABLE dim_category (
    category_id   INTEGER PRIMARY KEY,
    category_name TEXT NOT NULL UNIQUE
);

CREATE TABLE dim_product (
    product_id   INTEGER PRIMARY KEY,
    product_name TEXT NOT NULL,
    category_id  INTEGER NOT NULL REFERENCES dim_category(category_id),
    UNIQUE (product_name, category_id)
);

CREATE TABLE fact_sales (
    order_id      BIGINT PRIMARY KEY,
    date_id       INTEGER NOT NULL REFERENCES dim_date(date_id),
    region_id     INTEGER NOT NULL REFERENCES dim_region(region_id),
    channel_id    INTEGER NOT NULL REFERENCES dim_channel(channel_id),
    segment_id    INTEGER NOT NULL REFERENCES dim_customer_segment(segment_id),
    product_id    INTEGER NOT NULL REFERENCES dim_product(product_id),
    units_sold    INTEGER NOT NULL,
    unit_price    NUMERIC(12,2) NOT NULL,
    discount_pct  NUMERIC(6,4) NOT NULL,
    gross_revenue NUMERIC(14,2) NOT NULL,
    net_revenue   NUMERIC(14,2) NOT NULL,
    cost          NUMERIC(14,2) NOT NULL,
    profit        NUMERIC(14,2) NOT NULL
);

-- Indexes for the analytical join paths
CREATE INDEX idx_fact_sales_date ON fact_sales(date_id);
CREATE INDEX idx_fact_sales_region ON fact_sales(region_id);
CREATE INDEX idx_fact_sales_channel ON fact_sales(channel_id);
CREATE INDEX idx_fact_sales_segment ON fact_sales(segment_id);
CREATE INDEX idx_fact_sales_product ON fact_sales(product_id);
CREATE INDEX idx_dim_product_category ON dim_product(category_id);
`

// Drop schema SQL. The fact table goes first so the dimension drops
// never violate its foreign keys.
const dropSchemaSQL = `
DROP TABLE IF EXISTS fact_sales;
DROP TABLE IF EXISTS dim_product;
DROP TABLE IF EXISTS dim_category;
DROP TABLE IF EXISTS dim_customer_segment;
DROP TABLE IF EXISTS dim_channel;
DROP TABLE IF EXISTS dim_region;
DROP TABLE IF EXISTS dim_date;
`
