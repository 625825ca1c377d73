package avro

// ComparisonSummarySchema is the Avro schema of the comparison event.
// compared_at is unix milliseconds, optional address fields are unions.
const ComparisonSummarySchema = `{
	"type": "record",
	"name": "ComparisonSummary",
	"namespace": "com.ordercompare.comparison",
	"fields": [
		{"name": "id", "type": "string"},
		{"name": "factory_order_id", "type": "string"},
		{"name": "shop_order_name", "type": "string"},
		{"name": "store_prefix", "type": "string"},
		{"name": "factory_address", "type": ["null", "string"], "default": null},
		{"name": "shop_address", "type": ["null", "string"], "default": null},
		{"name": "rows", "type": {
			"type": "array",
			"items": {
				"type": "record",
				"name": "ComparisonRow",
				"fields": [
					{"name": "factory_product", "type": "string"},
					{"name": "factory_size", "type": "string"},
					{"name": "factory_quantity", "type": "string"},
					{"name": "shop_product", "type": "string"},
					{"name": "shop_size", "type": "string"},
					{"name": "shop_quantity", "type": "string"}
				]
			}
		}},
		{"name": "compared_at", "type": "long"}
	]
}`
