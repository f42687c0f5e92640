package main

import (
	"strings"
)

func (bp *interp) executeHelp(args []string) {

	if len(args) == 0 {
		bp.println("bye")
		bp.println("exit")
		bp.println("help")
		bp.println("list")
		bp.println("new")
		bp.println("run")
		bp.println("stats")
		bp.println("trace")
		return
	}

	switch strings.ToUpper(args[0]) {
	case "BYE", "EXIT":
		bp.println("Exit from BASIC")

	case "HELP":
		bp.println("Print the command list, or help on one command")

	case "LIST":
		bp.println("List the program, or a range of lines")
		bp.println("\tlist")
		bp.println("\tlist <line>")
		bp.println("\tlist <first>-<last>")

	case "NEW":
		bp.println("Erase current program")

	case "RUN":
		bp.println("Execute the current program")

	case "STATS":
		bp.println("Toggle printing execution statistics when user" +
			" program stops")

	case "TRACE":
		bp.println("Toggle tracing of user statement execution," +
			" variable modification or parsed lines")
		bp.println("\ttrace exec")
		bp.println("\ttrace vars")
		bp.println("\ttrace dump")
		bp.println("\ttrace <variable name>")

	default:
		bp.printf("No help for %q\n", args[0])
	}
}
