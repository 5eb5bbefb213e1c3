package reach

import (
	"fmt"
	"os"
	"strconv"
)

// Config is a typed settings map, generalized from the teacher's grammar
// compiler Config to this VM's runtime tuning knobs. Kept as the teacher's
// map[string]*cfgVal shape: typed accessors, panic on type mismatch, rather
// than a struct of named fields, because the VM's settings are sparse and
// looked up by path string the same way the teacher's compiler settings are
// (`runtime.no_gc`, `runtime.jit_threshold`, ...).
type Config map[string]*cfgVal

// NewConfig creates a configuration primed with the VM's default tuning
// knobs (spec §6).
func NewConfig() *Config {
	m := make(Config)
	m.SetBool("runtime.no_gc", false)
	m.SetBool("runtime.no_jit", true)
	m.SetInt("runtime.jit_threshold", 100)
	m.SetBool("runtime.dump_ast", false)
	m.SetBool("runtime.dump_bytecode", false)
	m.SetBool("runtime.print_ast_locations", false)
	return &m
}

// ConfigFromEnviron seeds a Config's defaults and then overrides them from
// the NO_GC/NO_JIT/JIT_THRESHOLD/DUMP_AST/DUMP_BYTECODE/PRINT_AST_LOCATIONS
// environment variables (spec §6), the same way the teacher's CLI composed
// flag.Bool/flag.Int values into its Config before constructing a compiler.
func ConfigFromEnviron() *Config {
	c := NewConfig()
	if v, ok := lookupBoolEnv("NO_GC"); ok {
		c.SetBool("runtime.no_gc", v)
	}
	if v, ok := lookupBoolEnv("NO_JIT"); ok {
		c.SetBool("runtime.no_jit", v)
	}
	if raw, ok := os.LookupEnv("JIT_THRESHOLD"); ok {
		if n, err := strconv.Atoi(raw); err == nil {
			c.SetInt("runtime.jit_threshold", n)
		}
	}
	if v, ok := lookupBoolEnv("DUMP_AST"); ok {
		c.SetBool("runtime.dump_ast", v)
	}
	if v, ok := lookupBoolEnv("DUMP_BYTECODE"); ok {
		c.SetBool("runtime.dump_bytecode", v)
	}
	if v, ok := lookupBoolEnv("PRINT_AST_LOCATIONS"); ok {
		c.SetBool("runtime.print_ast_locations", v)
	}
	return c
}

func lookupBoolEnv(name string) (bool, bool) {
	raw, ok := os.LookupEnv(name)
	if !ok {
		return false, false
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return b, true
}

type cfgValType int

const (
	cfgValType_Undefined cfgValType = iota
	cfgValType_Bool
	cfgValType_Int
	cfgValType_String
)

func (vt cfgValType) String() string {
	return map[cfgValType]string{
		cfgValType_Undefined: "undefined",
		cfgValType_Bool:      "bool",
		cfgValType_Int:       "int",
		cfgValType_String:    "string",
	}[vt]
}

type cfgVal struct {
	typ      cfgValType
	asBool   bool
	asInt    int
	asString string
}

func (v *cfgVal) assignType(vt cfgValType) {
	if v.typ != vt && v.typ != cfgValType_Undefined {
		panic(fmt.Sprintf("Can't assign `%s` to type `%s`", vt, v.typ))
	}
	v.typ = vt
}

func (v *cfgVal) checkType(vt cfgValType) {
	if v.typ != vt {
		panic(fmt.Sprintf("Can't retrieve `%s` from `%s` variable", vt, v.typ))
	}
}

func (c *Config) SetBool(path string, v bool) {
	(*c)[path] = &cfgVal{}
	(*c)[path].assignType(cfgValType_Bool)
	(*c)[path].asBool = v
}

func (c *Config) SetInt(path string, v int) {
	(*c)[path] = &cfgVal{}
	(*c)[path].assignType(cfgValType_Int)
	(*c)[path].asInt = v
}

func (c *Config) SetString(path string, v string) {
	(*c)[path] = &cfgVal{}
	(*c)[path].assignType(cfgValType_String)
	(*c)[path].asString = v
}

func (c *Config) GetBool(path string) bool {
	if val, ok := (*c)[path]; ok {
		val.checkType(cfgValType_Bool)
		return val.asBool
	}
	panic(fmt.Sprintf("Bool setting `%s` does not exist", path))
}

func (c *Config) GetInt(path string) int {
	if val, ok := (*c)[path]; ok {
		val.checkType(cfgValType_Int)
		return val.asInt
	}
	panic(fmt.Sprintf("Int setting `%s` does not exist", path))
}

func (c *Config) GetString(path string) string {
	if val, ok := (*c)[path]; ok {
		val.checkType(cfgValType_String)
		return val.asString
	}
	panic(fmt.Sprintf("String setting `%s` does not exist", path))
}
