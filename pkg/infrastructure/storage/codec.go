package storage

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"inventory/pkg/domain/model"
)

// One record per line, pipe-delimited, fixed field order. The header lines
// match the layout other implementations of this format write.
const (
	fieldDelimiter = "|"

	productHeader       = "product_id|name|description|price|stock|supplier_id"
	supplierHeader      = "supplier_id|name|contact"
	orderHeader         = "order_id|product_id|quantity|order_date"
	supplierOrderHeader = "order_id|supplier_id|product_id|quantity|order_date"
)

var (
	ErrMalformedRecord = errors.New("malformed record")
	ErrInvalidField    = errors.New("invalid field value")
)

func splitRecord(line string, want int) ([]string, error) {
	fields := strings.Split(line, fieldDelimiter)
	if len(fields) != want {
		return nil, errors.Wrapf(ErrMalformedRecord, "expected %d fields, got %d", want, len(fields))
	}
	if strings.TrimSpace(fields[0]) == "" {
		return nil, errors.Wrap(ErrMalformedRecord, "empty identifier")
	}
	return fields, nil
}

func parsePrice(raw string) (float64, error) {
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil || price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, errors.Wrapf(ErrInvalidField, "price %q", raw)
	}
	return price, nil
}

func parseCount(field, raw string) (int, error) {
	count, err := strconv.Atoi(raw)
	if err != nil || count < 0 {
		return 0, errors.Wrapf(ErrInvalidField, "%s %q", field, raw)
	}
	return count, nil
}

// checkText guards encoding: a value carrying the delimiter or a line break
// would corrupt the row layout, so it is rejected instead of written.
func checkText(field, value string) error {
	if strings.ContainsAny(value, fieldDelimiter+"\r\n") {
		return errors.Wrapf(ErrInvalidField, "%s contains delimiter or line break", field)
	}
	return nil
}

func decodeProduct(line string) (*model.Product, error) {
	fields, err := splitRecord(line, 6)
	if err != nil {
		return nil, err
	}
	price, err := parsePrice(fields[3])
	if err != nil {
		return nil, err
	}
	stock, err := parseCount("stock", fields[4])
	if err != nil {
		return nil, err
	}
	return &model.Product{
		ID:          fields[0],
		Name:        fields[1],
		Description: fields[2],
		Price:       price,
		Stock:       stock,
		SupplierID:  fields[5],
	}, nil
}

func encodeProduct(p *model.Product) (string, error) {
	for field, value := range map[string]string{
		"product_id": p.ID, "name": p.Name, "description": p.Description, "supplier_id": p.SupplierID,
	} {
		if err := checkText(field, value); err != nil {
			return "", err
		}
	}
	return strings.Join([]string{
		p.ID,
		p.Name,
		p.Description,
		strconv.FormatFloat(p.Price, 'f', -1, 64),
		strconv.Itoa(p.Stock),
		p.SupplierID,
	}, fieldDelimiter), nil
}

func decodeSupplier(line string) (*model.Supplier, error) {
	fields, err := splitRecord(line, 3)
	if err != nil {
		return nil, err
	}
	return &model.Supplier{ID: fields[0], Name: fields[1], Contact: fields[2]}, nil
}

func encodeSupplier(s *model.Supplier) (string, error) {
	for field, value := range map[string]string{
		"supplier_id": s.ID, "name": s.Name, "contact": s.Contact,
	} {
		if err := checkText(field, value); err != nil {
			return "", err
		}
	}
	return strings.Join([]string{s.ID, s.Name, s.Contact}, fieldDelimiter), nil
}

func decodeOrder(line string) (*model.Order, error) {
	fields, err := splitRecord(line, 4)
	if err != nil {
		return nil, err
	}
	quantity, err := parseCount("quantity", fields[2])
	if err != nil {
		return nil, err
	}
	return &model.Order{ID: fields[0], ProductID: fields[1], Quantity: quantity, Date: fields[3]}, nil
}

func encodeOrder(o *model.Order) (string, error) {
	for field, value := range map[string]string{
		"order_id": o.ID, "product_id": o.ProductID, "order_date": o.Date,
	} {
		if err := checkText(field, value); err != nil {
			return "", err
		}
	}
	return strings.Join([]string{o.ID, o.ProductID, strconv.Itoa(o.Quantity), o.Date}, fieldDelimiter), nil
}

func decodeSupplierOrder(line string) (*model.SupplierOrder, error) {
	fields, err := splitRecord(line, 5)
	if err != nil {
		return nil, err
	}
	quantity, err := parseCount("quantity", fields[3])
	if err != nil {
		return nil, err
	}
	return &model.SupplierOrder{
		ID:         fields[0],
		SupplierID: fields[1],
		ProductID:  fields[2],
		Quantity:   quantity,
		Date:       fields[4],
	}, nil
}

func encodeSupplierOrder(o *model.SupplierOrder) (string, error) {
	for field, value := range map[string]string{
		"order_id": o.ID, "supplier_id": o.SupplierID, "product_id": o.ProductID, "order_date": o.Date,
	} {
		if err := checkText(field, value); err != nil {
			return "", err
		}
	}
	return strings.Join([]string{
		o.ID, o.SupplierID, o.ProductID, strconv.Itoa(o.Quantity), o.Date,
	}, fieldDelimiter), nil
}
