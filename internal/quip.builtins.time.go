package internal

import (
	"fmt"
	"time"
	_ "time/tzdata" // zone names must resolve on hosts without a zoneinfo database

	"go.uber.org/zap"
)

// registerTimeFuncs registers time([zone])
func registerTimeFuncs(r *FuncRegistry) {
	r.MustRegister(&Func{
		Name:    FuncNameTime,
		MinArgs: 0,
		MaxArgs: 1,
		Types:   typesStringNull,
		Fn:      timeFunc,
	})
}

// timeFunc formats the invocation clock as 24-hour HH:MM. A non-string or
// missing zone means UTC; an unknown zone yields Null.
func timeFunc(rc *RuntimeContext, args []Value) (Value, error) {
	zone := TimeZoneDefault
	if len(args) > 0 {
		if s, ok := args[0].(StringValue); ok {
			zone = string(s)
		}
	}

	loc, err := loadZone(zone)
	if err != nil {
		rc.Logger().Debug(LogMsgTimeZoneInvalid,
			zap.String(LogFieldTimeZone, zone),
			zap.Error(err),
		)
		return Null, nil
	}
	return StringValue(rc.Now().In(loc).Format(TimeLayout24H)), nil
}

// loadZone resolves an IANA zone name. The empty name and "Local" are
// rejected so the result never depends on the host's configuration.
func loadZone(name string) (*time.Location, error) {
	if name == "" || name == TimeZoneLocal {
		return nil, fmt.Errorf(ErrFmtQuotedName, ErrMsgUnknownTimeZone, name)
	}
	return time.LoadLocation(name)
}
