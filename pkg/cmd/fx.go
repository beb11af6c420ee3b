package cmd

import "go.uber.org/fx"

var Module = fx.Module("cli",
	fx.Provide(
		fx.Annotate(NewDownCommand, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(NewFixCommand, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(NewGenerateCommand, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(NewInitCommand, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(NewRedoCommand, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(NewStatusCommand, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(NewUpCommand, fx.ResultTags(`group:"commands"`)),
	),
	fx.Invoke(Run),
)
