package dump

import "github.com/joosc/compiler/internal/ir"

// IR serializes a lowered ir.Program to JSON, one compilation unit per
// filename with its methods' flat opcode streams, so dump-ir --query
// can pull out e.g. "units.0.methods.0.ops.#.op" with gjson.
func IR(prog ir.Program) (string, error) {
	doc := "{}"
	for i, unit := range prog.Units {
		base := "units." + itoa(i)
		doc = set(doc, base+".filename", unit.Filename)
		for j, m := range unit.Methods {
			mp := base + ".methods." + itoa(j)
			doc = set(doc, mp+".methodId", int(m.MethodID))
			doc = set(doc, mp+".typeBase", int(m.TypeBase))
			doc = set(doc, mp+".isEntry", m.IsEntry)

			params := make([]string, len(m.Params))
			for k, sz := range m.Params {
				params[k] = sz.String()
			}
			doc = set(doc, mp+".params", params)

			for k, op := range m.Ops {
				op_ := mp + ".ops." + itoa(k)
				doc = set(doc, op_+".op", op.Op.String())
				doc = set(doc, op_+".args", argsSlice(m.Args, op.Begin, op.End))
			}
		}
	}
	return doc, nil
}

// argsSlice converts one Op's [begin, end) window of the owning
// method's shared Args vector to a plain slice, so each op's operands
// appear inline in the JSON rather than as an index a reader would
// have to cross-reference.
func argsSlice(args []uint64, begin, end int) []uint64 {
	out := make([]uint64, end-begin)
	copy(out, args[begin:end])
	return out
}
