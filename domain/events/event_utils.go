package events

import "reflect"

// ExtractRoomID reads the RoomID field of an event, or "" when it has none
func ExtractRoomID(event Event) string {
	val := reflect.ValueOf(event)

	// If it's a pointer, get the underlying element
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	if val.Kind() == reflect.Struct {
		roomID := val.FieldByName("RoomID")
		if roomID.IsValid() && roomID.Kind() == reflect.String {
			return roomID.String()
		}
	}

	return ""
}
