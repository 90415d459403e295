// Package dispatch ties route resolution to content loading.
//
// [Server] handles one request per call: resolve the page id from a
// [route.ServerRequest], load it unless it is the home page, and hand the
// [Result] to the caller for rendering.
//
// [Navigator] is the hash-routed client. It owns a single event loop that
// processes navigation events and load completions one at a time and drives
// an injected [View]. Every document transition bumps a generation counter;
// completions from an older generation, or arriving after the user went back
// home, are dropped, so the view always ends on the latest target.
package dispatch
