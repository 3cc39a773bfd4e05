package et

import (
	"github.com/davecgh/go-spew/spew"
	"log/slog"
	"reflect"
)

// printer renders values for log output. Pointers are followed,
// but their addresses are left out to keep the output stable.
var printer = spew.ConfigState{
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	DisableMethods:          true,
	SortKeys:                true,
}

// NewService records the construction of a service object. A service object
// is a plain struct holding the arguments of an operation:
//
//	type UpdatePlan struct {
//	    PlanID int
//	}
//
//	svc := et.NewService(logger, UpdatePlan{PlanID: 777})
//
// NewService logs the name of the service type together with its arguments on
// debug level and returns the arguments unchanged. A nil logger uses [slog.Default].
func NewService[T any](logger *slog.Logger, args T) T {
	loggerOrDefault(logger).Debug("initializing service",
		slog.String("service", typeName(reflect.TypeFor[T]())),
		slog.String("args", Repr(args)),
	)

	return args
}

// Repr renders value in a compact, human readable form including field names,
// e.g. {PlanID:777}.
func Repr(value any) string {
	return printer.Sprintf("%+v", value)
}

func typeName(ty reflect.Type) string {
	for ty.Kind() == reflect.Pointer {
		ty = ty.Elem()
	}

	if ty.Name() == "" {
		return ty.String()
	}

	return ty.Name()
}

func loggerOrDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}

	return logger
}
