package m

// XOR is the 4-row exclusive-or truth table.
func XOR() Lines {
	return Lines{
		{Inputs: []bool{false, false}, Targets: []bool{false}},
		{Inputs: []bool{false, true}, Targets: []bool{true}},
		{Inputs: []bool{true, false}, Targets: []bool{true}},
		{Inputs: []bool{true, true}, Targets: []bool{false}},
	}
}

// Assignment is the 6-input, 7-output table the larger demo network is trained on.
func Assignment() Lines {
	return Lines{
		{
			Inputs:  []bool{false, false, false, false, false, true},
			Targets: []bool{false, false, false, false, false, true, false},
		},
		{
			Inputs:  []bool{false, true, true, false, true, false},
			Targets: []bool{true, false, false, true, false, false, true},
		},
		{
			Inputs:  []bool{true, false, true, true, false, true},
			Targets: []bool{true, false, false, true, true, false, true},
		},
		{
			Inputs:  []bool{true, true, false, false, true, true},
			Targets: []bool{true, false, false, false, true, false, true},
		},
		{
			Inputs:  []bool{true, true, false, true, true, true},
			Targets: []bool{true, true, true, false, true, true, false},
		},
		{
			Inputs:  []bool{true, false, false, true, false, true},
			Targets: []bool{true, false, true, true, false, true, false},
		},
		{
			Inputs:  []bool{true, false, false, true, false, false},
			Targets: []bool{false, false, true, false, true, false, false},
		},
	}
}

// DatasetLookup maps the names accepted by the trainer to the built-in tables.
var DatasetLookup = map[string]func() Lines{
	"xor":        XOR,
	"assignment": Assignment,
}
