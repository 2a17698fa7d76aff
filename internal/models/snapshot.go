package models

import (
	"database/sql/driver"
	"encoding/json"
)

// SnapshotSchemaVersion 快照列当前序列化版本
const SnapshotSchemaVersion = 1

// ToppingSnapshot 配料快照（加入购物车/下单时冻结的配料信息）
type ToppingSnapshot struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Price Money  `json:"price"`
}

// ToppingSnapshots 配料快照列表，按带版本的 JSON 存储
type ToppingSnapshots []ToppingSnapshot

// IncludedItemSnapshot 套餐附带项快照（附带项无单独定价）
type IncludedItemSnapshot struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// IncludedItemSnapshots 套餐附带项快照列表，按带版本的 JSON 存储
type IncludedItemSnapshots []IncludedItemSnapshot

// snapshotEnvelope 快照列的持久化包裹结构
type snapshotEnvelope struct {
	Version int             `json:"v"`
	Items   json.RawMessage `json:"items"`
}

func marshalSnapshotColumn(items interface{}) (driver.Value, error) {
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	return json.Marshal(snapshotEnvelope{Version: SnapshotSchemaVersion, Items: raw})
}

func unmarshalSnapshotColumn(value interface{}, target interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			bytes = []byte(s)
		} else {
			return nil
		}
	}
	if len(bytes) == 0 {
		return nil
	}
	// 兼容历史裸数组格式
	if bytes[0] == '[' {
		return json.Unmarshal(bytes, target)
	}
	var envelope snapshotEnvelope
	if err := json.Unmarshal(bytes, &envelope); err != nil {
		return err
	}
	if len(envelope.Items) == 0 {
		return nil
	}
	return json.Unmarshal(envelope.Items, target)
}

// Value 实现 driver.Valuer 接口
func (t ToppingSnapshots) Value() (driver.Value, error) {
	if t == nil {
		t = ToppingSnapshots{}
	}
	return marshalSnapshotColumn([]ToppingSnapshot(t))
}

// Scan 实现 sql.Scanner 接口
func (t *ToppingSnapshots) Scan(value interface{}) error {
	*t = ToppingSnapshots{}
	return unmarshalSnapshotColumn(value, (*[]ToppingSnapshot)(t))
}

// Total 快照配料价格合计
func (t ToppingSnapshots) Total() Money {
	total := ZeroMoney()
	for _, topping := range t {
		total = total.AddMoney(topping.Price)
	}
	return total
}

// Value 实现 driver.Valuer 接口
func (i IncludedItemSnapshots) Value() (driver.Value, error) {
	if i == nil {
		i = IncludedItemSnapshots{}
	}
	return marshalSnapshotColumn([]IncludedItemSnapshot(i))
}

// Scan 实现 sql.Scanner 接口
func (i *IncludedItemSnapshots) Scan(value interface{}) error {
	*i = IncludedItemSnapshots{}
	return unmarshalSnapshotColumn(value, (*[]IncludedItemSnapshot)(i))
}
