package inventory

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/jhoicas/inventory-stock-api/internal/domain"
)

// RawItem payload sin tipar de un artículo tal como llega del cliente o de la cola.
// Solo se convierte a entity.UpdateRequestItem en ValidateItem.
type RawItem map[string]any

// ParseUpdatePayload valida el cuerpo {"items": [...]} de las actualizaciones síncrona y asíncrona.
// Cualquier error aquí es de nivel pipeline: ningún artículo se procesa.
func ParseUpdatePayload(body []byte) ([]RawItem, error) {
	var request map[string]any
	if err := decodeJSON(body, &request); err != nil || request == nil {
		return nil, domain.NewValidationError(domain.ValidationInvalidJSON, "Invalid JSON in inventory payload.")
	}
	itemsObj, ok := request["items"]
	if !ok || itemsObj == nil {
		return nil, domain.NewValidationError(domain.ValidationMissingField, "Missing 'items' in inventory payload.")
	}
	list, ok := itemsObj.([]any)
	if !ok {
		return nil, domain.NewValidationError(domain.ValidationBadType, "'items' must be a list.")
	}
	if len(list) == 0 {
		return nil, domain.NewValidationError(domain.ValidationEmptyList, "Inventory items list is empty.")
	}
	return toRawItems(list, "Each item must be an object.")
}

// ParseQueueItems valida el cuerpo de un mensaje de la cola (lista JSON de artículos).
func ParseQueueItems(body []byte) ([]RawItem, error) {
	var list []any
	if err := decodeJSON(body, &list); err != nil {
		return nil, domain.NewValidationError(domain.ValidationInvalidJSON, "Invalid JSON in queue message")
	}
	if len(list) == 0 {
		return nil, domain.NewValidationError(domain.ValidationEmptyList, "Queue message contains an empty list of items")
	}
	return toRawItems(list, "Each item must be a JSON object")
}

// EncodeQueueItems serializa la lista para el cuerpo del mensaje de la cola.
func EncodeQueueItems(items []RawItem) ([]byte, error) {
	return json.Marshal(items)
}

func toRawItems(list []any, notObjectMsg string) ([]RawItem, error) {
	items := make([]RawItem, 0, len(list))
	for _, v := range list {
		m, ok := v.(map[string]any)
		if !ok {
			return nil, domain.NewValidationError(domain.ValidationBadType, "%s", notObjectMsg)
		}
		items = append(items, RawItem(m))
	}
	return items, nil
}

// decodeJSON decodifica un único valor JSON conservando los números como json.Number.
func decodeJSON(body []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("datos extra después del JSON")
	}
	return nil
}
