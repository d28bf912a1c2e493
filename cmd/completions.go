package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/blockstage/internal/store"
)

// completeSprites suggests sprite names from the costume catalog.
func completeSprites(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	costumes := store.Costumes
	if ctx != nil && len(ctx.Config.Sprites.Costumes) > 0 {
		costumes = ctx.Config.Sprites.Costumes
	}

	var completions []string
	for _, c := range costumes {
		if strings.HasPrefix(c.Name, toComplete) {
			completions = append(completions, c.Name+"@\t"+c.Emoji+" "+c.Name)
		}
	}
	return completions, cobra.ShellCompDirectiveNoSpace | cobra.ShellCompDirectiveNoFileComp
}

// completeRunKeys returns a completion function for recorded run keys.
func completeRunKeys(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 || ctx == nil || ctx.RunRepo == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	runs, err := ctx.RunRepo.List(20)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var completions []string
	for _, r := range runs {
		if strings.HasPrefix(r.Key, toComplete) {
			completions = append(completions, r.Key+"\t"+r.ActorName+" "+string(r.Status))
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}
