package wire

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"reservewise/internal/entities"
	"reservewise/internal/utils"
)

type object map[string]json.RawMessage

// lookup returns the first present, non-null value among names.
func (o object) lookup(names ...string) (json.RawMessage, bool) {
	for _, n := range names {
		if raw, ok := o[n]; ok && !isNull(raw) {
			return raw, true
		}
	}
	return nil, false
}

func (o object) str(names ...string) string {
	raw, ok := o.lookup(names...)
	if !ok {
		return ""
	}
	return rawString(raw)
}

func (o object) timestamp(names ...string) time.Time {
	raw, ok := o.lookup(names...)
	if !ok {
		return time.Time{}
	}
	return rawTime(raw)
}

func isNull(raw json.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) == 0 || string(bytes.TrimSpace(raw)) == "null"
}

// rawString reads strings and numbers; ids are sometimes sent as integers.
func rawString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&n); err == nil {
		return n.String()
	}
	return ""
}

func rawTime(raw json.RawMessage) time.Time {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return utils.ParseTime(s)
	}
	var ms float64
	if err := json.Unmarshal(raw, &ms); err == nil {
		return utils.FromEpochMillis(ms)
	}
	return time.Time{}
}

func decodeObject(data []byte) (object, error) {
	var o object
	if err := json.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("decode object: %w", err)
	}
	if o == nil {
		return nil, fmt.Errorf("decode object: got null")
	}
	return o, nil
}

func decodeArray(data []byte) ([]json.RawMessage, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	return items, nil
}

func (s Schema) customerFromObject(o object) entities.Customer {
	a, b := s.customer, s.other().customer
	return entities.Customer{
		ID:        o.str(a.ID, b.ID),
		Name:      strings.TrimSpace(o.str(a.Name, b.Name)),
		Email:     o.str(a.Email, b.Email),
		Phone:     o.str(a.Phone, b.Phone),
		Address:   o.str(a.Address, b.Address),
		CreatedAt: o.timestamp(a.CreatedAt, b.CreatedAt),
	}
}

func (s Schema) reservationFromObject(o object) entities.Reservation {
	a, b := s.reservation, s.other().reservation
	return entities.Reservation{
		ID:           o.str(a.ID, b.ID),
		CustomerID:   o.str(a.CustomerID, b.CustomerID),
		CustomerName: strings.TrimSpace(o.str(a.CustomerName, b.CustomerName)),
		Service:      o.str(a.Service, b.Service),
		Date:         o.timestamp(a.Date, b.Date),
		// Unknown values are kept verbatim; the badge renderer decides.
		Status: entities.Status(strings.ToLower(o.str(a.Status, b.Status, "estado"))),
	}
}

// DecodeCustomer reads one customer object under either naming convention.
func (s Schema) DecodeCustomer(data []byte) (entities.Customer, error) {
	o, err := decodeObject(data)
	if err != nil {
		return entities.Customer{}, err
	}
	return s.customerFromObject(o), nil
}

// DecodeCustomers reads a JSON array of customers. Elements that are not
// objects are skipped.
func (s Schema) DecodeCustomers(data []byte) ([]entities.Customer, error) {
	items, err := decodeArray(data)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Customer, 0, len(items))
	for _, raw := range items {
		o, err := decodeObject(raw)
		if err != nil {
			continue
		}
		out = append(out, s.customerFromObject(o))
	}
	return out, nil
}

func (s Schema) DecodeReservation(data []byte) (entities.Reservation, error) {
	o, err := decodeObject(data)
	if err != nil {
		return entities.Reservation{}, err
	}
	return s.reservationFromObject(o), nil
}

func (s Schema) DecodeReservations(data []byte) ([]entities.Reservation, error) {
	items, err := decodeArray(data)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Reservation, 0, len(items))
	for _, raw := range items {
		o, err := decodeObject(raw)
		if err != nil {
			continue
		}
		out = append(out, s.reservationFromObject(o))
	}
	return out, nil
}

func timeValue(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return utils.FormatISO(t)
}

// EncodeCustomer writes c using only the authoritative names.
func (s Schema) EncodeCustomer(c entities.Customer) ([]byte, error) {
	f := s.customer
	return json.Marshal(map[string]any{
		f.ID:        c.ID,
		f.Name:      c.Name,
		f.Email:     c.Email,
		f.Phone:     c.Phone,
		f.Address:   c.Address,
		f.CreatedAt: timeValue(c.CreatedAt),
	})
}

// EncodeCustomers writes a JSON array; a nil slice encodes as [].
func (s Schema) EncodeCustomers(cs []entities.Customer) ([]byte, error) {
	parts := make([]json.RawMessage, 0, len(cs))
	for _, c := range cs {
		b, err := s.EncodeCustomer(c)
		if err != nil {
			return nil, err
		}
		parts = append(parts, b)
	}
	return json.Marshal(parts)
}

func (s Schema) EncodeReservation(r entities.Reservation) ([]byte, error) {
	f := s.reservation
	return json.Marshal(map[string]any{
		f.ID:           r.ID,
		f.CustomerID:   r.CustomerID,
		f.CustomerName: r.CustomerName,
		f.Service:      r.Service,
		f.Date:         timeValue(r.Date),
		f.Status:       string(r.Status),
	})
}

func (s Schema) EncodeReservations(rs []entities.Reservation) ([]byte, error) {
	parts := make([]json.RawMessage, 0, len(rs))
	for _, r := range rs {
		b, err := s.EncodeReservation(r)
		if err != nil {
			return nil, err
		}
		parts = append(parts, b)
	}
	return json.Marshal(parts)
}

// DecodeErrorDetail extracts a readable message from an error body. It reads
// {"detail": "..."} and the list form {"detail": [{"msg": "..."}]}. An
// unreadable body yields "".
func DecodeErrorDetail(body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || isNull(envelope.Detail) {
		return ""
	}
	var s string
	if err := json.Unmarshal(envelope.Detail, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var items []struct {
		Msg string `json:"msg"`
		Loc []any  `json:"loc"`
	}
	if err := json.Unmarshal(envelope.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg == "" {
				continue
			}
			if field := lastLoc(it.Loc); field != "" {
				msgs = append(msgs, field+": "+it.Msg)
				continue
			}
			msgs = append(msgs, it.Msg)
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}

func lastLoc(loc []any) string {
	if len(loc) == 0 {
		return ""
	}
	switch v := loc[len(loc)-1].(type) {
	case string:
		return v
	case float64:
		return strconv.Itoa(int(v))
	}
	return ""
}

// EncodeErrorDetail builds the {"detail": msg} body the API uses for failures.
func EncodeErrorDetail(msg string) []byte {
	b, _ := json.Marshal(map[string]string{"detail": msg})
	return b
}
