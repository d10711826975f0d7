package main

import (
	"fmt"
	"os"
	"path"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"github.com/vyPal/tacc/lib/project"
	"github.com/vyPal/tacc/util"
)

const sampleProgram = `int x;
float y;
x = 2 + 3 * 4;
y = x / 4.0;
{
	int x;
	x = y * 2;
}
`

func init() {
	commands = append(commands, &cli.Command{
		Name:      "init",
		Usage:     "Initialize a new tacc project",
		Category:  "project",
		ArgsUsage: "[dir]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Usage:   "The name of the project",
			},
			&cli.StringFlag{
				Name:    "main",
				Aliases: []string{"m"},
				Usage:   "The main file of the project",
			},
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Accept the defaults without prompting",
			},
			&cli.BoolFlag{
				Name:    "force",
				Aliases: []string{"f"},
				Usage:   "Overwrite an existing " + project.FileName,
			},
		},
		Action: initProject,
	})
}

func initProject(c *cli.Context) error {
	rootDir := c.Args().First()
	if rootDir == "" {
		rootDir = "."
	}

	if _, err := os.Stat(rootDir); os.IsNotExist(err) {
		if err := os.MkdirAll(rootDir, 0755); err != nil {
			return err
		}
		fmt.Println("Created directory:", rootDir)
	}

	conf := project.TacConf{}
	conf.CreateDefault(path.Base(rootDir))
	if name := c.String("name"); name != "" {
		conf.Name = name
	}
	if mainFile := c.String("main"); mainFile != "" {
		conf.Main = mainFile
	}

	if !c.Bool("yes") && !util.PromptYN("Use default configuration?", true) {
		conf.Name = util.PromptString("Project name", conf.Name)
		conf.Description = util.PromptString("Description", conf.Description)
		conf.Main = util.PromptString("Main file", conf.Main)
		conf.Compiler.EmitLLVM = util.PromptYN("Emit LLVM IR after analysis?", false)
	}

	mainPath := path.Join(rootDir, conf.Main)
	if _, err := os.Stat(mainPath); os.IsNotExist(err) {
		if err := os.WriteFile(mainPath, []byte(sampleProgram), 0644); err != nil {
			return err
		}
		fmt.Println("Created file:", mainPath)
	}

	confPath := path.Join(rootDir, project.FileName)
	if err := conf.Save(confPath, c.Bool("force") || c.Bool("yes")); err != nil {
		return cli.Exit(color.RedString("Error writing %s: %s", confPath, err), 1)
	}
	color.Green("Project %s initialized", conf.Name)
	return nil
}
