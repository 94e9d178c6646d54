package dice

import "go.uber.org/zap"

// LoggedRoller rolls with a Source and logs every roll at debug level with
// expression, dice values, modifier, and total. It is meant for tracing a
// single battle, not for bulk simulation.
type LoggedRoller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a LoggedRoller that rolls with src and logs to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *LoggedRoller {
	return &LoggedRoller{src: src, logger: logger}
}

// Roll implements Roller.
//
// Precondition: count >= 0; sides > 0.
func (r *LoggedRoller) Roll(count, sides, modifier int) int {
	result, err := Roll(Expression{
		Raw:        Notation(count, sides, modifier),
		Count:      count,
		Sides:      sides,
		Modifier:   modifier,
		Multiplier: 1,
	}, r.src)
	if err != nil {
		panic(err.Error())
	}
	if ce := r.logger.Check(zap.DebugLevel, "dice roll"); ce != nil {
		ce.Write(
			zap.String("expression", result.Expression),
			zap.Ints("dice", result.Dice),
			zap.Int("modifier", result.Modifier),
			zap.Int("total", result.Total()),
		)
	}
	return result.Total()
}
