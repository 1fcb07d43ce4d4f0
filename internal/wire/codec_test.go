package wire

import (
	"encoding/json"
	"testing"

	"reservewise/internal/entities"
)

func TestDecodeCustomers_BothNamingConventions(t *testing.T) {
	body := `[
		{"id": "1", "name": "Alice Johnson", "email": "alice@example.com", "phone": "123", "createdAt": "2023-10-01T00:00:00Z"},
		{"id": 2, "nombre": "Bob Williams", "email": "bob@example.com", "telefono": "234", "direccion": "Calle 1", "fecha_registro": "2023-10-05T12:00:00.123456"},
		{"id": "3", "name": "Charlie", "email": "c@example.com", "createdAt": "not-a-date"},
		{"id": "4", "name": "Diana", "email": "d@example.com", "createdAt": null},
		"garbage"
	]`

	got, err := English.DecodeCustomers([]byte(body))
	if err != nil {
		t.Fatalf("DecodeCustomers: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("len = %d, want 4", len(got))
	}
	if got[0].Name != "Alice Johnson" || got[0].CreatedAt.IsZero() {
		t.Errorf("english customer decoded wrong: %+v", got[0])
	}
	if got[1].ID != "2" || got[1].Name != "Bob Williams" || got[1].Phone != "234" || got[1].Address != "Calle 1" {
		t.Errorf("spanish customer decoded wrong: %+v", got[1])
	}
	if got[1].CreatedAt.IsZero() {
		t.Error("fecha_registro should parse")
	}
	if !got[2].CreatedAt.IsZero() {
		t.Errorf("invalid date should decode as zero, got %v", got[2].CreatedAt)
	}
	if !got[3].CreatedAt.IsZero() {
		t.Errorf("null date should decode as zero, got %v", got[3].CreatedAt)
	}
}

func TestDecodeCustomer_PrefersAuthoritativeName(t *testing.T) {
	body := `{"id": "1", "name": "English Name", "nombre": "Nombre"}`

	en, err := English.DecodeCustomer([]byte(body))
	if err != nil {
		t.Fatal(err)
	}
	if en.Name != "English Name" {
		t.Errorf("English schema Name = %q", en.Name)
	}

	es, err := Spanish.DecodeCustomer([]byte(body))
	if err != nil {
		t.Fatal(err)
	}
	if es.Name != "Nombre" {
		t.Errorf("Spanish schema Name = %q", es.Name)
	}
}

func TestDecodeReservations(t *testing.T) {
	body := `[
		{"id": "res1", "customerId": "1", "customerName": "Alice", "service": "Haircut", "date": "2024-01-02T10:00:00Z", "status": "confirmed"},
		{"id": "res2", "cliente_id": "2", "cliente_nombre": "Bob", "servicio": "Manicure", "fecha": "2024-01-03", "status": "PENDING"},
		{"id": "res3", "customerId": "3", "service": "Massage", "date": 1704290400000, "status": "archived"},
		{"id": "res4", "customerId": "3", "service": "Massage", "date": "tomorrow"}
	]`

	got, err := English.DecodeReservations([]byte(body))
	if err != nil {
		t.Fatalf("DecodeReservations: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("len = %d, want 4", len(got))
	}
	if got[0].Status != entities.StatusConfirmed || got[0].Date.IsZero() {
		t.Errorf("res1 decoded wrong: %+v", got[0])
	}
	if got[1].CustomerID != "2" || got[1].CustomerName != "Bob" || got[1].Service != "Manicure" || got[1].Status != entities.StatusPending {
		t.Errorf("res2 decoded wrong: %+v", got[1])
	}
	if got[2].Date.IsZero() {
		t.Error("epoch millis date should parse")
	}
	if got[2].Status.Valid() {
		t.Errorf("unknown status should be kept verbatim and invalid, got %q", got[2].Status)
	}
	if !got[3].Date.IsZero() {
		t.Errorf("invalid date should be zero, got %v", got[3].Date)
	}
}

func TestDecodeCustomers_NotAnArray(t *testing.T) {
	if _, err := English.DecodeCustomers([]byte(`{"detail":"nope"}`)); err == nil {
		t.Fatal("expected an error for a non-array body")
	}
}

func TestEncodeCustomer_UsesAuthoritativeNames(t *testing.T) {
	c := entities.Customer{Name: "Alice", Email: "a@example.com", Phone: "1234567890"}

	b, err := Spanish.EncodeCustomer(c)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatal(err)
	}
	if m["nombre"] != "Alice" || m["telefono"] != "1234567890" {
		t.Errorf("spanish body = %v", m)
	}
	if _, ok := m["name"]; ok {
		t.Error("spanish body must not carry english names")
	}
	if m["id"] != "" {
		t.Errorf("new customer id = %v, want empty string", m["id"])
	}
	if m["fecha_registro"] != nil {
		t.Errorf("zero date should encode as null, got %v", m["fecha_registro"])
	}
}

func TestEncodeReservation_RoundTripsThroughDecode(t *testing.T) {
	in := entities.Reservation{CustomerID: "1", CustomerName: "Alice", Service: "Facial", Status: entities.StatusPending}
	b, err := English.EncodeReservation(in)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"id", "customerId", "customerName", "service", "date", "status"} {
		if _, ok := m[key]; !ok {
			t.Errorf("body missing %q: %v", key, m)
		}
	}
	if m["status"] != "pending" {
		t.Errorf("status = %v", m["status"])
	}
}

func TestDecodeErrorDetail(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "string detail", body: `{"detail": "Email already registered"}`, want: "Email already registered"},
		{name: "validation list", body: `{"detail": [{"loc": ["body", "email"], "msg": "value is not a valid email address"}]}`, want: "email: value is not a valid email address"},
		{name: "no detail", body: `{"error": "x"}`, want: ""},
		{name: "null detail", body: `{"detail": null}`, want: ""},
		{name: "not json", body: `Internal Server Error`, want: ""},
		{name: "empty", body: ``, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodeErrorDetail([]byte(tt.body)); got != tt.want {
				t.Errorf("DecodeErrorDetail() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseSchema(t *testing.T) {
	for _, name := range []string{"", "english", "EN"} {
		s, err := ParseSchema(name)
		if err != nil || s.Name != English.Name {
			t.Errorf("ParseSchema(%q) = %v, %v", name, s.Name, err)
		}
	}
	s, err := ParseSchema("es")
	if err != nil || s.CustomersPath != "/clientes" {
		t.Errorf("ParseSchema(es) = %+v, %v", s, err)
	}
	if _, err := ParseSchema("klingon"); err == nil {
		t.Error("expected error for unknown schema")
	}
}
