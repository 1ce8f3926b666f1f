package registry

// Quantization describes a supported weight quantization scheme. The
// algorithm itself lives in the code generator; the pipeline only needs its
// parameters to hand them over.
type Quantization struct {
	Name          string `toml:"name" yaml:"name" json:"name"`
	Kind          string `toml:"kind" yaml:"kind" json:"kind"`
	GroupSize     int    `toml:"group_size" yaml:"group_size" json:"group_size"`
	QuantizeDType string `toml:"quantize_dtype" yaml:"quantize_dtype" json:"quantize_dtype"`
	StorageDType  string `toml:"storage_dtype" yaml:"storage_dtype" json:"storage_dtype"`
	ModelDType    string `toml:"model_dtype" yaml:"model_dtype" json:"model_dtype"`
}

const (
	KindGroupQuant = "group-quant"
	KindAWQ        = "awq"
)

var quantizationTable = []Quantization{
	{
		Name:          "q3f16_1",
		Kind:          KindGroupQuant,
		GroupSize:     40,
		QuantizeDType: "int3",
		StorageDType:  "uint32",
		ModelDType:    "float16",
	},
	{
		Name:          "q4f16_1",
		Kind:          KindGroupQuant,
		GroupSize:     32,
		QuantizeDType: "int4",
		StorageDType:  "uint32",
		ModelDType:    "float16",
	},
	{
		Name:          "q4f32_1",
		Kind:          KindGroupQuant,
		GroupSize:     32,
		QuantizeDType: "int4",
		StorageDType:  "uint32",
		ModelDType:    "float32",
	},
	{
		Name:          "q4f16_awq",
		Kind:          KindAWQ,
		GroupSize:     128,
		QuantizeDType: "int4",
		StorageDType:  "uint32",
		ModelDType:    "float16",
	},
}
