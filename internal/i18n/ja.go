package i18n

var ja = tree{
	"common": tree{
		"success": "成功",
		"error":   "エラー",
		"total":   "合計",
	},
	"bookings": tree{
		"messages": tree{
			"notFoundUUID":        "UUID {id} の予約が見つかりません",
			"notFoundWordPress":   "WordPress ID {id} の予約が見つかりません",
			"updated":             "予約 {id} を更新しました",
			"rescheduled":         "予約 {id} の日程を変更しました",
			"cancelled":           "予約 {id} をキャンセルしました",
			"deleted":             "予約 {id} を完全に削除しました",
			"assigned":            "予約 {id} にドライバーと車両を割り当てました",
			"unassignRequired":    "予約IDとドライバーIDは必須です。",
			"unassigned":          "ドライバーの割り当てを解除しました。",
			"unassignFailed":      "ドライバーの割り当てを解除できませんでした。予約がこのドライバーに割り当てられていないか、存在しません。",
			"syncSuccess":         "{count} 件の予約を同期しました（新規 {created} 件、更新 {updated} 件）",
			"syncPartial":         "{count} 件の予約を一部同期しました（新規 {created} 件、更新 {updated} 件、エラー {errors} 件）",
			"syncFailed":          "同期に失敗しました（エラー {errors} 件）",
			"syncEmpty":           "同期する予約がありません",
			"created":             "予約 {id} を作成しました",
			"requiredFieldsError": "顧客メール、サービス、日付、時間は必須です",
		},
	},
	"quotations": tree{
		"status": tree{
			"draft":     "下書き",
			"sent":      "送信済み",
			"approved":  "承認済み",
			"rejected":  "却下",
			"expired":   "期限切れ",
			"converted": "予約済み",
			"paid":      "支払済み",
		},
		"form": tree{
			"promotions": tree{
				"invalid":           "無効なプロモーションコードです",
				"notActive":         "このプロモーションはまだ有効ではありません",
				"expired":           "このプロモーションは期限切れです",
				"usageLimitReached": "このプロモーションは利用上限に達しました",
				"minimumAmount":     "最低金額: {amount}",
				"applied":           "プロモーション {name} を適用しました",
				"discount":          "プロモーション割引",
				"maxDiscount":       "最大割引額: {amount}",
			},
			"errors": tree{
				"serviceTypeRequired": "保存する前にサービスタイプを選択してください",
			},
		},
		"pricing": tree{
			"services": "サービス",
			"package":  "パッケージ",
			"discount": "割引",
			"tax":      "税金",
			"subtotal": "小計",
			"total":    "合計金額",
		},
		"email": tree{
			"subject":  "{company} からのお見積もり {id}",
			"heading":  "お見積もり",
			"greeting": "{name} 様",
			"intro":    "お問い合わせいただきありがとうございます。お見積もりの詳細は以下の通りです。",
			"validity": "このお見積もりの有効期限は {date} です。",
		},
	},
}
