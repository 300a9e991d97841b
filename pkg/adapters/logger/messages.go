package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Job level messages
		"Starting job %s for %s":                      "ジョブ %s を開始します: %s",
		"Job %s is %s":                                "ジョブ %s の状態: %s",
		"Job %s workspace: %s":                        "ジョブ %s の作業ディレクトリ: %s",
		"Job %s failed: %v":                           "ジョブ %s が失敗しました: %v",
		"Wrote %s: %d of %d frames kept":              "%s を書き出しました: %d / %d フレームを保持",
		"Dry run: %d of %d frames would be dropped":   "ドライラン: %d / %d フレームが削除対象です",
		"Could not remove workspace %s: %v":           "作業ディレクトリ %s を削除できませんでした: %v",
		"Could not save debug output: %v":             "デバッグ出力を保存できませんでした: %v",
		"Skipping thumbnails after %d dropped frames": "削除フレーム %d 枚以降のサムネイルを省略します",
		"Could not probe %s: %v":                      "%s のメタデータを読み取れませんでした: %v",
		"Frame rate of %s unknown, using %.0f fps":    "%s のフレームレートが不明のため %.0f fps を使用します",
		"Input frame rate is %.3f fps":                "入力のフレームレートは %.3f fps です",

		// Extract stage
		"Decoding %s":       "%s をデコード中",
		"Decoded %d frames": "%d フレームをデコードしました",

		// Dedupe stage
		"Scoring %d frames in batches of %d with %d workers": "%d フレームを %d 枚ずつのバッチで %d ワーカーにより比較中",
		"Could not compare frame %d with frame %d: %v":       "フレーム %d と %d を比較できませんでした: %v",
		"Frame %d duplicates frame %d (score %.4f)":          "フレーム %d はフレーム %d の重複です (スコア %.4f)",
		"Could not delete %s: %v":                            "%s を削除できませんでした: %v",
		"Marked %d of %d frames as duplicates":               "%d / %d フレームを重複と判定しました",

		// Compact stage
		"Renumbered %d frames into %s": "%d フレームを %s に連番化しました",

		// Encode stage
		"Encoding at %.2f fps":                   "%.2f fps でエンコード中",
		"Video encoded: %d bytes":                "動画のエンコード完了: %d バイト",
		"Could not remove partial output %s: %v": "途中の出力 %s を削除できませんでした: %v",

		// ffmpeg
		"Decoding %s into %s": "%s を %s にデコード中",
		"Encoding %s into %s": "%s を %s にエンコード中",
		"Running %s %s":       "実行: %s %s",
		"Using ffmpeg at %s":  "ffmpeg を使用します: %s",

		// CLI
		"Interrupted, shutting down...": "中断されました。シャットダウン中...",
		"Summary saved to %s":           "サマリーを %s に保存しました",
		"Metrics saved to %s":           "メトリクスを %s に保存しました",
		"Could not write summary: %v":   "サマリーを書き込めませんでした: %v",
		"Could not write metrics: %v":   "メトリクスを書き込めませんでした: %v",
	})
}
