// Package prompt provides the interactive questions guet asks on a terminal.
//
// Available prompts:
//   - [ChooseStrategy]: overwrite, install alongside, or cancel when
//     foreign hooks are already present
package prompt
