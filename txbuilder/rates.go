package txbuilder

// RateTable holds a satoshi-per-byte rate for each of the two output
// classes spec.md §4.5 defines: "data" (OP_FALSE OP_RETURN outputs) and
// "standard" (everything else).
type RateTable struct {
	Data     uint64
	Standard uint64
}

// Rates bundles the fee-calculation rate table and the dust-threshold
// rate table. They may differ: spec.md §4.5 allows a nested
// {mine: {...}, relay: {...}} rate map where mine rates compute the fee
// a builder must pay and relay rates compute the dust threshold a
// change output must clear.
type Rates struct {
	Mine  RateTable
	Relay RateTable
}

// FlatRate builds a Rates value where every class and every purpose
// uses the same per-byte rate — the "rates may be an integer" case.
func FlatRate(rate uint64) Rates {
	t := RateTable{Data: rate, Standard: rate}
	return Rates{Mine: t, Relay: t}
}

// ClassRates builds a Rates value from a {data, standard} pair applied
// to both mining and relay.
func ClassRates(data, standard uint64) Rates {
	t := RateTable{Data: data, Standard: standard}
	return Rates{Mine: t, Relay: t}
}

// MineRelayRates builds a Rates value with distinct mine/relay tables —
// the fully general {mine: {...}, relay: {...}} case.
func MineRelayRates(mine, relay RateTable) Rates {
	return Rates{Mine: mine, Relay: relay}
}
