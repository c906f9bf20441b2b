// internal/models/common.go
package models

// Enums
type AssetStatus string

const (
	AssetStatusActive   AssetStatus = "active"
	AssetStatusInactive AssetStatus = "inactive"
)

func (s AssetStatus) Valid() bool {
	return s == AssetStatusActive || s == AssetStatusInactive
}

type SpecDataType string

const (
	SpecDataTypeText    SpecDataType = "text"
	SpecDataTypeNumber  SpecDataType = "number"
	SpecDataTypeSelect  SpecDataType = "select"
	SpecDataTypeDate    SpecDataType = "date"
	SpecDataTypeBoolean SpecDataType = "boolean"
)

func (t SpecDataType) Valid() bool {
	switch t {
	case SpecDataTypeText, SpecDataTypeNumber, SpecDataTypeSelect, SpecDataTypeDate, SpecDataTypeBoolean:
		return true
	}
	return false
}

type ConsumableType string

const (
	ConsumableTypeConsumable ConsumableType = "consumable"
	ConsumableTypeComponent  ConsumableType = "component"
)

func (t ConsumableType) Valid() bool {
	return t == ConsumableTypeConsumable || t == ConsumableTypeComponent
}

type ConnectEventType string

const (
	ConnectEventConnect    ConnectEventType = "CONNECT"
	ConnectEventDisconnect ConnectEventType = "DISCONNECT"
)
