// Package session implements the interactive side of the Pandora client.
//
// A Session owns the list of subscribed topics and turns shell commands
// into encoded frames published on those topics. Frames arriving on the
// same topics are decoded and printed.
//
// # Commands
//
//	subscribe    [topic=#] [prefix=true]
//	unsubscribe  [index=-1]
//	list
//	drain        [on=true] [limit=10] [index=-1] [qos=0]
//	light        [color=white] [limit=60] [index=-1] [qos=0]
//	auto         [on=true] [dryness_max=0] [drain_range=00:00-00:00]
//	             [brightness_min=0] [light_range=00:00-00:00] [index=-1] [qos=0]
//	force_update [on=true] [index=-1] [qos=0]
//	help, ?      [command]
//	exit, quit
//
// Arguments are positional; missing trailing arguments take the defaults
// shown. Topic indices may be negative, counting back from the most recent
// subscription.
//
// # Errors
//
// Every command returns a Result. Input and transport errors are reported
// and the shell keeps running; only exit, end of input, or cancellation of
// the context stop it. Frames that cannot be decoded are logged at warn
// level and dropped.
//
// # Example
//
//	(cli) $ subscribe sensors
//	(cli) $ light white 60 -1 0
//	(cli) $ list
//	[0] pandora/alice/sensors
package session
