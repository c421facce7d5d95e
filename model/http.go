package model

type QueryRequestBody struct {
	Kind     Kind  `json:"kind"`
	N        int   `json:"n"`
	MinCount int   `json:"min_count"`
	MainOnly bool  `json:"main_only"`
	HasGrace *bool `json:"has_grace"`
	Mode     Mode  `json:"mode"`
}

type SectionsRequestBody struct {
	MinLength int `json:"min_length"`
	MinCount  int `json:"min_count"`
	MaxLength int `json:"max_length"`
}

type VariationsRequestBody struct {
	Pattern    []string `json:"pattern"`
	Kind       Kind     `json:"kind"`
	Similarity float64  `json:"similarity"`
	// NOTE: when set, section variations are searched instead of set similarity
	Tolerance *int `json:"tolerance"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
